package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stylehive/database"
)

type CartItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	VariantID primitive.ObjectID `json:"variant_id" bson:"variant_id"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	AddedAt   time.Time          `json:"added_at" bson:"added_at"`
}

// Cart is the one-per-user pending purchase document. It is replaced item
// by item while shopping and deleted wholesale at checkout.
type Cart struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items     []CartItem         `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CartLine is a cart item with product and variant details resolved for
// display and checkout.
type CartLine struct {
	ProductID  primitive.ObjectID `json:"product_id"`
	VariantID  primitive.ObjectID `json:"variant_id"`
	CategoryID primitive.ObjectID `json:"category_id"`
	Name       string             `json:"name"`
	Color      string             `json:"color"`
	Image      string             `json:"image"`
	SalePrice  float64            `json:"sale_price"`
	Quantity   int                `json:"quantity"`
	Total      float64            `json:"total"`
}

func GetCartByUser(userID primitive.ObjectID) (Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var cart Cart
	err := db.OpenCollection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	return cart, err
}

// AddToCart upserts the user's cart. Adding the same variant again bumps
// the quantity instead of duplicating the line.
func AddToCart(userID primitive.ObjectID, item CartItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	item.AddedAt = time.Now()
	carts := db.OpenCollection("carts")

	result, err := carts.UpdateOne(ctx,
		bson.M{
			"user_id":          userID,
			"items.product_id": item.ProductID,
			"items.variant_id": item.VariantID,
		},
		bson.M{
			"$inc": bson.M{"items.$.quantity": item.Quantity},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount > 0 {
		return nil
	}

	_, err = carts.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$push": bson.M{"items": item},
			"$set":  bson.M{"updated_at": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func UpdateCartQuantity(userID, productID, variantID primitive.ObjectID, quantity int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OpenCollection("carts").UpdateOne(ctx,
		bson.M{
			"user_id":          userID,
			"items.product_id": productID,
			"items.variant_id": variantID,
		},
		bson.M{
			"$set": bson.M{"items.$.quantity": quantity, "updated_at": time.Now()},
		},
	)
	return err
}

func RemoveFromCart(userID, productID, variantID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OpenCollection("carts").UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"product_id": productID, "variant_id": variantID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

// DeleteCart removes the user's cart wholesale, as checkout does.
func DeleteCart(userID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OpenCollection("carts").DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// ResolveCartLines loads the user's cart and joins in product and variant
// details. Blocked products and variants drop out of the result.
func ResolveCartLines(userID primitive.ObjectID) ([]CartLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var cart Cart
	err := db.OpenCollection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return []CartLine{}, nil
	}

	productIDs := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{
		"_id":        bson.M{"$in": productIDs},
		"is_blocked": false,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}

	productMap := make(map[primitive.ObjectID]Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	lines := []CartLine{}
	for _, item := range cart.Items {
		product, ok := productMap[item.ProductID]
		if !ok {
			continue
		}
		variant := product.VariantByID(item.VariantID)
		if variant == nil || variant.IsBlocked {
			continue
		}
		image := ""
		if len(variant.Images) > 0 {
			image = variant.Images[0]
		}
		lines = append(lines, CartLine{
			ProductID:  item.ProductID,
			VariantID:  item.VariantID,
			CategoryID: product.CategoryID,
			Name:       product.Name,
			Color:      variant.Color,
			Image:      image,
			SalePrice:  variant.SalePrice,
			Quantity:   item.Quantity,
			Total:      float64(item.Quantity) * variant.SalePrice,
		})
	}
	return lines, nil
}

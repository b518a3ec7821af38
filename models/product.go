package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stylehive/database"
)

// Variant is one purchasable configuration of a product, with its own
// images, price and stock.
type Variant struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Color     string             `json:"color" bson:"color"`
	Images    []string           `json:"images" bson:"images"`
	Price     float64            `json:"price" bson:"price"`
	SalePrice float64            `json:"sale_price" bson:"sale_price"`
	Stock     int                `json:"stock" bson:"stock"`
	IsBlocked bool               `json:"is_blocked" bson:"is_blocked"`
}

type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	CategoryID  primitive.ObjectID `json:"category_id" bson:"category_id"`
	Variants    []Variant          `json:"variants" bson:"variants"`
	Rating      float64            `json:"rating" bson:"rating"`
	IsBlocked   bool               `json:"is_blocked" bson:"is_blocked"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// VariantByID returns the product's variant with the given id, or nil.
func (p *Product) VariantByID(id primitive.ObjectID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// ProductQuery is the list filter used by both the storefront and the
// back office.
type ProductQuery struct {
	Page           int
	Limit          int
	Search         string
	CategoryID     primitive.ObjectID
	IncludeBlocked bool
}

func AddProduct(product Product) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	for i := range product.Variants {
		if product.Variants[i].ID.IsZero() {
			product.Variants[i].ID = primitive.NewObjectID()
		}
	}

	_, err := db.ProductCollection.InsertOne(ctx, product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

// ListProducts returns one page of products plus the total match count.
func ListProducts(query ProductQuery) ([]Product, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if !query.IncludeBlocked {
		filter["is_blocked"] = false
	}
	if query.Search != "" {
		filter["$or"] = []bson.M{
			{"name": SearchRegex(query.Search)},
			{"description": SearchRegex(query.Search)},
		}
	}
	if !query.CategoryID.IsZero() {
		filter["category_id"] = query.CategoryID
	}

	total, err := db.ProductCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 12
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.ProductCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func GetProductByID(id primitive.ObjectID) (Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var product Product
	err := db.ProductCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	return product, err
}

func UpdateProduct(id primitive.ObjectID, updated Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":        updated.Name,
			"description": updated.Description,
			"category_id": updated.CategoryID,
			"updated_at":  time.Now(),
		},
	}

	result, err := db.ProductCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func SetProductBlocked(id primitive.ObjectID, blocked bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_blocked": blocked, "updated_at": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddVariant appends a new variant to a product.
func AddVariant(productID primitive.ObjectID, variant Variant) (Variant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	variant.ID = primitive.NewObjectID()
	result, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{
			"$push": bson.M{"variants": variant},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return Variant{}, err
	}
	if result.MatchedCount == 0 {
		return Variant{}, mongo.ErrNoDocuments
	}
	return variant, nil
}

func UpdateVariant(productID, variantID primitive.ObjectID, variant Variant) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": productID, "variants._id": variantID}
	update := bson.M{
		"$set": bson.M{
			"variants.$.color":      variant.Color,
			"variants.$.price":      variant.Price,
			"variants.$.sale_price": variant.SalePrice,
			"variants.$.stock":      variant.Stock,
			"updated_at":            time.Now(),
		},
	}
	if len(variant.Images) > 0 {
		update["$set"].(bson.M)["variants.$.images"] = variant.Images
	}

	result, err := db.ProductCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DecrementVariantStock reduces a variant's stock after an order. It only
// matches when enough stock remains, so two racing checkouts cannot drive
// the count negative.
func DecrementVariantStock(productID, variantID primitive.ObjectID, qty int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id": productID,
		"variants": bson.M{"$elemMatch": bson.M{
			"_id":   variantID,
			"stock": bson.M{"$gte": qty},
		}},
	}
	result, err := db.ProductCollection.UpdateOne(ctx, filter,
		bson.M{"$inc": bson.M{"variants.$.stock": -qty}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrOutOfStock
	}
	return nil
}

// RestoreVariantStock puts stock back after a cancel or approved return.
func RestoreVariantStock(productID, variantID primitive.ObjectID, qty int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"_id": productID, "variants._id": variantID},
		bson.M{"$inc": bson.M{"variants.$.stock": qty}},
	)
	return err
}

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

type WishlistItem struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"product_id"`
	AddedAt   time.Time          `json:"added_at" bson:"added_at"`
}

// Wishlist is one document per user.
type Wishlist struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"user_id" bson:"user_id"`
	Items  []WishlistItem     `json:"items" bson:"items"`
}

// ToggleWishlist adds the product when absent and removes it when present.
// Returns true when the product ended up in the wishlist.
func ToggleWishlist(userID, productID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wishlists := db.OpenCollection("wishlists")

	var wishlist Wishlist
	err := wishlists.FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist)
	if err != nil && err != mongo.ErrNoDocuments {
		return false, err
	}

	for _, item := range wishlist.Items {
		if item.ProductID == productID {
			_, err := wishlists.UpdateOne(ctx,
				bson.M{"user_id": userID},
				bson.M{"$pull": bson.M{"items": bson.M{"product_id": productID}}},
			)
			return false, err
		}
	}

	_, err = wishlists.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$push": bson.M{"items": WishlistItem{ProductID: productID, AddedAt: time.Now()}}},
		options.Update().SetUpsert(true),
	)
	return true, err
}

func RemoveFromWishlist(userID, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.OpenCollection("wishlists").UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$pull": bson.M{"items": bson.M{"product_id": productID}}},
	)
	return err
}

// GetWishlistProducts returns the unblocked products on the user's
// wishlist.
func GetWishlistProducts(userID primitive.ObjectID) ([]Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wishlist Wishlist
	err := db.OpenCollection("wishlists").FindOne(ctx, bson.M{"user_id": userID}).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		return []Product{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(wishlist.Items) == 0 {
		return []Product{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(wishlist.Items))
	for _, item := range wishlist.Items {
		ids = append(ids, item.ProductID)
	}

	cursor, err := db.ProductCollection.Find(ctx, bson.M{
		"_id":        bson.M{"$in": ids},
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
	return products, nil
}

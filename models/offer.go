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

const (
	OfferProduct  = "product"
	OfferCategory = "category"
)

// Offer is a percentage discount on a product or a whole category,
// active inside its time window.
type Offer struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Type            string             `json:"type" bson:"type"`
	TargetID        primitive.ObjectID `json:"target_id" bson:"target_id"`
	DiscountPercent float64            `json:"discount_percent" bson:"discount_percent"`
	StartsAt        time.Time          `json:"starts_at" bson:"starts_at"`
	EndsAt          time.Time          `json:"ends_at" bson:"ends_at"`
	IsActive        bool               `json:"is_active" bson:"is_active"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// AppliesNow reports whether the offer is active at the given time.
func (o Offer) AppliesNow(now time.Time) bool {
	return o.IsActive && !now.Before(o.StartsAt) && now.Before(o.EndsAt)
}

func CreateOffer(offer Offer) (Offer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	offer.ID = primitive.NewObjectID()
	offer.CreatedAt = time.Now()
	_, err := db.OfferCollection.InsertOne(ctx, offer)
	if err != nil {
		return Offer{}, err
	}
	return offer, nil
}

func ListOffers(page, limit int) ([]Offer, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	total, err := db.OfferCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.OfferCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var offers []Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, 0, err
	}
	return offers, total, nil
}

func UpdateOffer(id primitive.ObjectID, offer Offer) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.OfferCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"name":             offer.Name,
			"discount_percent": offer.DiscountPercent,
			"starts_at":        offer.StartsAt,
			"ends_at":          offer.EndsAt,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func SetOfferActive(id primitive.ObjectID, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.OfferCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ActiveOffersFor returns the currently active offers matching a product
// or its category.
func ActiveOffersFor(productID, categoryID primitive.ObjectID) ([]Offer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	cursor, err := db.OfferCollection.Find(ctx, bson.M{
		"is_active": true,
		"starts_at": bson.M{"$lte": now},
		"ends_at":   bson.M{"$gt": now},
		"$or": []bson.M{
			{"type": OfferProduct, "target_id": productID},
			{"type": OfferCategory, "target_id": categoryID},
		},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var offers []Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// DeactivateExpiredOffers flips is_active off for offers past their end
// time. Run from cron.
func DeactivateExpiredOffers() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := db.OfferCollection.UpdateMany(ctx,
		bson.M{"is_active": true, "ends_at": bson.M{"$lt": time.Now()}},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

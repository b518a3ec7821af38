package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/database"
)

// DailySales is one bucket of the sales chart.
type DailySales struct {
	Date    string  `json:"date" bson:"_id"`
	Orders  int64   `json:"orders" bson:"orders"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

// TopProduct is a best-seller row on the dashboard.
type TopProduct struct {
	ProductID primitive.ObjectID `json:"product_id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Sold      int64              `json:"sold" bson:"sold"`
	Revenue   float64            `json:"revenue" bson:"revenue"`
}

// SalesSummary aggregates delivered-or-paid orders into daily buckets for
// the admin dashboard.
func SalesSummary(from, to time.Time) ([]DailySales, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pipeline := mongoSalesMatch(from, to)
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$final_amount"},
		}},
		bson.M{"$sort": bson.M{"_id": 1}},
	)

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []DailySales
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// TopProducts returns the best sellers in the window, by units sold.
func TopProducts(from, to time.Time, limit int) ([]TopProduct, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if limit < 1 || limit > 50 {
		limit = 10
	}

	pipeline := mongoSalesMatch(from, to)
	pipeline = append(pipeline,
		bson.M{"$unwind": "$items"},
		bson.M{"$group": bson.M{
			"_id":     "$items.product_id",
			"name":    bson.M{"$first": "$items.name"},
			"sold":    bson.M{"$sum": "$items.quantity"},
			"revenue": bson.M{"$sum": "$items.total"},
		}},
		bson.M{"$sort": bson.M{"sold": -1}},
		bson.M{"$limit": limit},
	)

	cursor, err := db.OrderCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var top []TopProduct
	if err := cursor.All(ctx, &top); err != nil {
		return nil, err
	}
	return top, nil
}

// mongoSalesMatch limits aggregations to orders that actually count as
// sales: cancelled and returned orders are excluded.
func mongoSalesMatch(from, to time.Time) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"created_at": bson.M{"$gte": from, "$lt": to},
			"status":     bson.M{"$nin": bson.A{"cancelled", "returned", "payment_pending"}},
		}},
	}
}

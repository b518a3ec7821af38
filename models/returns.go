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
	ReturnPending  = "pending"
	ReturnApproved = "approved"
	ReturnRejected = "rejected"
)

// ReturnRequest tracks a user's request to return a delivered order.
type ReturnRequest struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OrderID     primitive.ObjectID `json:"order_id" bson:"order_id"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id"`
	Reason      string             `json:"reason" bson:"reason"`
	Status      string             `json:"status" bson:"status"`
	Remark      string             `json:"remark,omitempty" bson:"remark,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	ProcessedAt time.Time          `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
}

func CreateReturnRequest(orderID, userID primitive.ObjectID, reason string) (ReturnRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request := ReturnRequest{
		ID:        primitive.NewObjectID(),
		OrderID:   orderID,
		UserID:    userID,
		Reason:    reason,
		Status:    ReturnPending,
		CreatedAt: time.Now(),
	}
	_, err := db.OpenCollection("returns").InsertOne(ctx, request)
	if err != nil {
		return ReturnRequest{}, err
	}
	return request, nil
}

func ListReturns(page, limit int, status string) ([]ReturnRequest, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	returns := db.OpenCollection("returns")
	total, err := returns.CountDocuments(ctx, filter)
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

	cursor, err := returns.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var requests []ReturnRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func GetReturnByID(id primitive.ObjectID) (ReturnRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var request ReturnRequest
	err := db.OpenCollection("returns").FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	return request, err
}

func SetReturnStatus(id primitive.ObjectID, status, remark string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.OpenCollection("returns").UpdateOne(ctx,
		bson.M{"_id": id, "status": ReturnPending},
		bson.M{"$set": bson.M{
			"status":       status,
			"remark":       remark,
			"processed_at": time.Now(),
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

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
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

// WithdrawalRequest is a user's request to move wallet funds out to their
// bank account.
type WithdrawalRequest struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id"`
	Amount      float64            `json:"amount" bson:"amount"`
	BankAccount string             `json:"bank_account" bson:"bank_account"`
	Status      string             `json:"status" bson:"status"`
	Remark      string             `json:"remark,omitempty" bson:"remark,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	ProcessedAt time.Time          `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
}

func CreateWithdrawal(request WithdrawalRequest) (WithdrawalRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	request.ID = primitive.NewObjectID()
	request.Status = WithdrawalPending
	request.CreatedAt = time.Now()
	_, err := db.OpenCollection("withdrawals").InsertOne(ctx, request)
	if err != nil {
		return WithdrawalRequest{}, err
	}
	return request, nil
}

func ListWithdrawals(page, limit int, status string) ([]WithdrawalRequest, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	withdrawals := db.OpenCollection("withdrawals")
	total, err := withdrawals.CountDocuments(ctx, filter)
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

	cursor, err := withdrawals.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var requests []WithdrawalRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

func GetWithdrawalByID(id primitive.ObjectID) (WithdrawalRequest, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var request WithdrawalRequest
	err := db.OpenCollection("withdrawals").FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	return request, err
}

// SetWithdrawalStatus resolves a pending request. Only pending requests
// can be resolved, so an approve cannot be flipped to reject afterwards.
func SetWithdrawalStatus(id primitive.ObjectID, status, remark string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.OpenCollection("withdrawals").UpdateOne(ctx,
		bson.M{"_id": id, "status": WithdrawalPending},
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

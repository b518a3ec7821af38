package models

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stylehive/database"
)

const (
	WalletCredit = "credit"
	WalletDebit  = "debit"
)

// WalletTransaction records every movement of a user's wallet balance.
// The balance itself lives on the user document.
type WalletTransaction struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id"`
	Type        string             `json:"type" bson:"type"`
	Amount      float64            `json:"amount" bson:"amount"`
	Reference   string             `json:"reference" bson:"reference"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// CreditWallet adds to the balance and records the transaction.
func CreditWallet(userID primitive.ObjectID, amount float64, description string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"wallet_balance": amount}},
	)
	if err != nil {
		return err
	}

	txn := WalletTransaction{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Type:        WalletCredit,
		Amount:      amount,
		Reference:   uuid.NewString(),
		Description: description,
		CreatedAt:   time.Now(),
	}
	_, err = db.OpenCollection("wallet_transactions").InsertOne(ctx, txn)
	return err
}

// DebitWallet subtracts from the balance. The filter only matches when the
// balance covers the amount, so the balance cannot go negative even under
// concurrent debits.
func DebitWallet(userID primitive.ObjectID, amount float64, description string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID, "wallet_balance": bson.M{"$gte": amount}},
		bson.M{"$inc": bson.M{"wallet_balance": -amount}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientFunds
	}

	txn := WalletTransaction{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		Type:        WalletDebit,
		Amount:      amount,
		Reference:   uuid.NewString(),
		Description: description,
		CreatedAt:   time.Now(),
	}
	_, err = db.OpenCollection("wallet_transactions").InsertOne(ctx, txn)
	return err
}

func GetWalletTransactions(userID primitive.ObjectID) ([]WalletTransaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := db.OpenCollection("wallet_transactions").Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var txns []WalletTransaction
	if err := cursor.All(ctx, &txns); err != nil {
		return nil, err
	}
	return txns, nil
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"stylehive/database"
)

func testCartLines() []CartLine {
	return []CartLine{
		{
			ProductID: primitive.NewObjectID(),
			VariantID: primitive.NewObjectID(),
			Name:      "Linen Shirt",
			Color:     "white",
			SalePrice: 500,
			Quantity:  2,
			Total:     1000,
		},
		{
			ProductID: primitive.NewObjectID(),
			VariantID: primitive.NewObjectID(),
			Name:      "Canvas Belt",
			Color:     "tan",
			SalePrice: 300,
			Quantity:  1,
			Total:     300,
		},
	}
}

func TestNewOrderTotals(t *testing.T) {
	userID := primitive.NewObjectID()
	address := Address{Name: "Asha", City: "Pune", Pincode: "411001"}

	order := NewOrder(userID, address, testCartLines(), 0, 0, 0, MethodCOD)

	assert.Equal(t, 1300.0, order.Subtotal)
	assert.Equal(t, 1300.0, order.FinalAmount)
	assert.Equal(t, OrderPlaced, order.Status)
	assert.Equal(t, PaymentPending, order.PaymentStatus)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 1000.0, order.Items[0].Total)
	assert.Equal(t, address, order.ShippingAddress)
}

func TestNewOrderFinalAmountFormula(t *testing.T) {
	order := NewOrder(primitive.NewObjectID(), Address{}, testCartLines(), 130, 65, 40, MethodWallet)

	assert.Equal(t, 1300.0, order.Subtotal)
	assert.Equal(t, order.Subtotal-order.Discount+order.Tax+order.Shipping, order.FinalAmount)
	assert.Equal(t, 1275.0, order.FinalAmount)
}

func TestNewOrderEmptyLines(t *testing.T) {
	order := NewOrder(primitive.NewObjectID(), Address{}, nil, 0, 0, 0, MethodCOD)

	assert.Empty(t, order.Items)
	assert.Zero(t, order.Subtotal)
	assert.Zero(t, order.FinalAmount)
}

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{OrderPaymentPending, OrderPlaced},
		{OrderPaymentPending, OrderCancelled},
		{OrderPlaced, OrderProcessing},
		{OrderPlaced, OrderCancelled},
		{OrderProcessing, OrderShipped},
		{OrderProcessing, OrderCancelled},
		{OrderShipped, OrderDelivered},
		{OrderDelivered, OrderReturnRequested},
		{OrderReturnRequested, OrderReturned},
		{OrderReturnRequested, OrderDelivered},
	}
	for _, pair := range allowed {
		assert.True(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}

	denied := [][2]string{
		{OrderPlaced, OrderDelivered},
		{OrderShipped, OrderCancelled},
		{OrderDelivered, OrderCancelled},
		{OrderCancelled, OrderPlaced},
		{OrderReturned, OrderDelivered},
		{OrderDelivered, OrderDelivered},
	}
	for _, pair := range denied {
		assert.False(t, CanTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}

func TestMarkOrderPaidOnlyWhileAwaitingPayment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("order that moved on is not matched", func(mt *mtest.T) {
		db.OrderCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := MarkOrderPaid(primitive.NewObjectID(), "pay_x")
		assert.ErrorIs(mt, err, ErrInvalidTransition)
	})

	mt.Run("pending order is confirmed", func(mt *mtest.T) {
		db.OrderCollection = mt.Coll
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, MarkOrderPaid(primitive.NewObjectID(), "pay_x"))
	})
}

func TestOfferAppliesNow(t *testing.T) {
	now := time.Now()
	offer := Offer{
		Type:            OfferProduct,
		DiscountPercent: 20,
		StartsAt:        now.Add(-time.Hour),
		EndsAt:          now.Add(time.Hour),
		IsActive:        true,
	}

	assert.True(t, offer.AppliesNow(now))

	inactive := offer
	inactive.IsActive = false
	assert.False(t, inactive.AppliesNow(now))

	expired := offer
	expired.EndsAt = now.Add(-time.Minute)
	assert.False(t, expired.AppliesNow(now))

	future := offer
	future.StartsAt = now.Add(time.Minute)
	assert.False(t, future.AppliesNow(now))
}

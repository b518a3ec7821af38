package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"stylehive/database"
	"stylehive/models"
)

func checkoutRequest(t *testing.T, userID primitive.ObjectID, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID.Hex())
	c.Request = httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestPlaceOrderUnknownAddress(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no order is created", func(mt *mtest.T) {
		db.UserCollection = mt.Coll

		userID := primitive.NewObjectID()
		userDoc := bson.D{
			{Key: "_id", Value: userID},
			{Key: "email", Value: "asha@example.com"},
			{Key: "addresses", Value: bson.A{}},
		}
		// Only the user lookup is mocked: the handler must bail out before
		// touching the cart or the orders collection.
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "stylehive_db.users", mtest.FirstBatch, userDoc))

		body := `{"addressId":"` + primitive.NewObjectID().Hex() + `","paymentMethod":"cod"}`
		w, c := checkoutRequest(mt.T, userID, body)
		PlaceOrder(c)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "Address not found")
	})
}

func verifyRequest(t *testing.T, userID primitive.ObjectID, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID.Hex())
	c.Request = httptest.NewRequest(http.MethodPost, "/checkout/verify", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestVerifyCheckoutPaymentReplayIsNoOp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("confirmed order is left untouched", func(mt *mtest.T) {
		db.OrderCollection = mt.Coll

		userID := primitive.NewObjectID()
		orderID := primitive.NewObjectID()
		orderDoc := bson.D{
			{Key: "_id", Value: orderID},
			{Key: "user_id", Value: userID},
			{Key: "status", Value: models.OrderDelivered},
			{Key: "payment_status", Value: models.PaymentPaid},
			{Key: "razorpay_order_id", Value: "order_replayed"},
		}
		// Only the lookup is mocked: the handler must answer without
		// issuing any write against the order.
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "stylehive_db.orders", mtest.FirstBatch, orderDoc))

		body := `{"razorpay_order_id":"order_replayed","razorpay_payment_id":"pay_x","razorpay_signature":"sig"}`
		w, c := verifyRequest(mt.T, userID, body)
		VerifyCheckoutPayment(c)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "already verified")
	})
}

func TestVerifyCheckoutPaymentClosedOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("order past payment_pending rejects payment updates", func(mt *mtest.T) {
		db.OrderCollection = mt.Coll

		userID := primitive.NewObjectID()
		orderDoc := bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: userID},
			{Key: "status", Value: models.OrderShipped},
			{Key: "payment_status", Value: models.PaymentFailed},
			{Key: "razorpay_order_id", Value: "order_closed"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "stylehive_db.orders", mtest.FirstBatch, orderDoc))

		body := `{"razorpay_order_id":"order_closed","razorpay_payment_id":"pay_x","razorpay_signature":"sig"}`
		w, c := verifyRequest(mt.T, userID, body)
		VerifyCheckoutPayment(c)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "not awaiting payment")
	})
}

func TestPlaceOrderUnknownPaymentMethod(t *testing.T) {
	userID := primitive.NewObjectID()
	body := `{"addressId":"` + primitive.NewObjectID().Hex() + `","paymentMethod":"cheque"}`
	w, c := checkoutRequest(t, userID, body)

	PlaceOrder(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown payment method")
}

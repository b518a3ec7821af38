package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"stylehive/database"
	"stylehive/models"
)

func approveReturnRequest(t *testing.T, returnID primitive.ObjectID) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: returnID.Hex()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/returns/"+returnID.Hex()+"/approve", nil)
	return w, c
}

func TestAdminApproveReturnAlreadyProcessed(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("second approve does not refund again", func(mt *mtest.T) {
		db.Client = mt.Client

		returnID := primitive.NewObjectID()
		returnDoc := bson.D{
			{Key: "_id", Value: returnID},
			{Key: "order_id", Value: primitive.NewObjectID()},
			{Key: "user_id", Value: primitive.NewObjectID()},
			{Key: "status", Value: models.ReturnApproved},
		}
		// Only the request lookup is mocked: the handler must stop before
		// touching the order or the wallet.
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "stylehive_db.returns", mtest.FirstBatch, returnDoc))

		w, c := approveReturnRequest(mt.T, returnID)
		AdminApproveReturn(c)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "already processed")
	})
}

func TestAdminApproveReturnOrderNotEligible(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("request stays pending when the order cannot be returned", func(mt *mtest.T) {
		db.Client = mt.Client
		db.OrderCollection = mt.Coll

		returnID := primitive.NewObjectID()
		orderID := primitive.NewObjectID()
		returnDoc := bson.D{
			{Key: "_id", Value: returnID},
			{Key: "order_id", Value: orderID},
			{Key: "user_id", Value: primitive.NewObjectID()},
			{Key: "status", Value: models.ReturnPending},
		}
		orderDoc := bson.D{
			{Key: "_id", Value: orderID},
			{Key: "status", Value: models.OrderDelivered},
			{Key: "payment_status", Value: models.PaymentPaid},
		}
		// Two read mocks and nothing else: a write before the eligibility
		// check would error out the handler instead of producing the 400.
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "stylehive_db.returns", mtest.FirstBatch, returnDoc),
			mtest.CreateCursorResponse(0, "stylehive_db.orders", mtest.FirstBatch, orderDoc),
		)

		w, c := approveReturnRequest(mt.T, returnID)
		AdminApproveReturn(c)

		assert.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Contains(mt, w.Body.String(), "not awaiting a return")
	})
}

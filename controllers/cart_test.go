package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"stylehive/database"
)

func cartRequest(t *testing.T, userID primitive.ObjectID) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", userID.Hex())
	c.Request = httptest.NewRequest(http.MethodGet, "/cart", nil)
	return w, c
}

func TestGetCartNoDocumentMeansEmptyCart(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing cart document", func(mt *mtest.T) {
		db.Client = mt.Client
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "stylehive_db.carts", mtest.FirstBatch))

		w, c := cartRequest(mt.T, primitive.NewObjectID())
		GetCart(c)

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), `"subtotal":0`)
	})
}

func TestGetCartStoreFailureIsServerError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("store I/O failure surfaces as 500", func(mt *mtest.T) {
		db.Client = mt.Client
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11601,
			Name:    "Interrupted",
			Message: "operation was interrupted",
		}))

		w, c := cartRequest(mt.T, primitive.NewObjectID())
		GetCart(c)

		assert.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.Contains(mt, w.Body.String(), "Failed to fetch cart")
	})
}

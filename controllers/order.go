package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
)

func GetUserOrders(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	orders, err := models.GetOrdersByUser(userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	ok(c, "", gin.H{"orders": orders})
}

// GetOrder returns one of the user's own orders.
func GetOrder(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil || order.UserID != userID {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	ok(c, "", gin.H{"order": order})
}

// CancelOrder lets a shopper cancel before shipping. Stock goes back and
// anything already paid is refunded to the wallet.
func CancelOrder(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil || order.UserID != userID {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	cancelled, err := models.TransitionOrder(orderID, models.OrderCancelled)
	if err == models.ErrInvalidTransition {
		fail(c, http.StatusBadRequest, "Order can no longer be cancelled")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	restockOrder(cancelled)
	if order.PaymentStatus == models.PaymentPaid {
		if err := models.CreditWallet(userID, order.FinalAmount, "Refund for cancelled order"); err == nil {
			_ = models.SetOrderPayment(orderID, models.PaymentRefunded, "")
		}
	}

	ok(c, "Order cancelled", nil)
}

// RequestReturn opens a return for a delivered order.
func RequestReturn(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "A reason is required")
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil || order.UserID != userID {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	if _, err := models.TransitionOrder(orderID, models.OrderReturnRequested); err != nil {
		fail(c, http.StatusBadRequest, "Only delivered orders can be returned")
		return
	}
	if err := models.SetReturnReason(orderID, input.Reason); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to record return reason")
		return
	}

	if _, err := models.CreateReturnRequest(orderID, userID, input.Reason); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create return request")
		return
	}

	ok(c, "Return requested", nil)
}

func restockOrder(order models.Order) {
	for _, item := range order.Items {
		_ = models.RestoreVariantStock(item.ProductID, item.VariantID, item.Quantity)
	}
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
)

// AdminListOrders lists all orders with an optional status filter.
func AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, total, err := models.ListOrders(models.OrderQuery{
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	ok(c, "", gin.H{
		"orders": orders,
		"total":  total,
		"page":   page,
	})
}

func AdminGetOrder(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := models.GetOrderByID(orderID)
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	ok(c, "", gin.H{"order": order})
}

// AdminUpdateOrderStatus moves an order along its lifecycle. Cancelling
// from here restocks the items and refunds paid amounts to the wallet,
// same as a user-initiated cancel.
func AdminUpdateOrderStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Status is required")
		return
	}

	wasPaid := false
	if input.Status == models.OrderCancelled {
		current, err := models.GetOrderByID(orderID)
		if err != nil {
			fail(c, http.StatusNotFound, "Order not found")
			return
		}
		wasPaid = current.PaymentStatus == models.PaymentPaid
	}

	order, err := models.TransitionOrder(orderID, input.Status)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			fail(c, http.StatusBadRequest, "Order cannot move to that status")
			return
		}
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	if input.Status == models.OrderCancelled {
		restockOrder(order)
		if wasPaid {
			if err := models.CreditWallet(order.UserID, order.FinalAmount, "Refund for cancelled order"); err == nil {
				_ = models.SetOrderPayment(orderID, models.PaymentRefunded, "")
			}
		}
	}

	ok(c, "Order status updated", gin.H{"order": order})
}

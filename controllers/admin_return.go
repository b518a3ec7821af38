package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
)

func AdminListReturns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	returns, total, err := models.ListReturns(page, limit, c.Query("status"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch return requests")
		return
	}

	ok(c, "", gin.H{
		"returns": returns,
		"total":   total,
		"page":    page,
	})
}

// AdminApproveReturn accepts a return request. The order moves to
// returned, its items go back into stock and the amount is refunded to
// the user's wallet.
func AdminApproveReturn(c *gin.Context) {
	returnID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid return ID")
		return
	}

	var input struct {
		Remark string `json:"remark"`
	}
	_ = c.ShouldBindJSON(&input)

	request, err := models.GetReturnByID(returnID)
	if err != nil {
		fail(c, http.StatusNotFound, "Return request not found")
		return
	}
	if request.Status != models.ReturnPending {
		fail(c, http.StatusBadRequest, "Return request already processed")
		return
	}

	order, err := models.GetOrderByID(request.OrderID)
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}
	if !models.CanTransition(order.Status, models.OrderReturned) {
		fail(c, http.StatusBadRequest, "Order is not awaiting a return")
		return
	}

	// Approving the request is the commit point: the pending-only update
	// means a concurrent or repeated approve cannot refund twice.
	if err := models.SetReturnStatus(returnID, models.ReturnApproved, input.Remark); err != nil {
		fail(c, http.StatusBadRequest, "Return request already processed")
		return
	}

	order, err = models.TransitionOrder(request.OrderID, models.OrderReturned)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Return approved but order update failed")
		return
	}

	restockOrder(order)
	if order.PaymentStatus == models.PaymentPaid {
		if err := models.CreditWallet(order.UserID, order.FinalAmount, "Refund for returned order"); err == nil {
			_ = models.SetOrderPayment(order.ID, models.PaymentRefunded, "")
		}
	}

	ok(c, "Return approved and refunded", nil)
}

// AdminRejectReturn declines a return request and puts the order back
// to delivered.
func AdminRejectReturn(c *gin.Context) {
	returnID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid return ID")
		return
	}

	var input struct {
		Remark string `json:"remark"`
	}
	_ = c.ShouldBindJSON(&input)

	request, err := models.GetReturnByID(returnID)
	if err != nil {
		fail(c, http.StatusNotFound, "Return request not found")
		return
	}
	if request.Status != models.ReturnPending {
		fail(c, http.StatusBadRequest, "Return request already processed")
		return
	}

	if _, err := models.TransitionOrder(request.OrderID, models.OrderDelivered); err != nil {
		fail(c, http.StatusBadRequest, "Order is not awaiting a return")
		return
	}

	if err := models.SetReturnStatus(returnID, models.ReturnRejected, input.Remark); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update return request")
		return
	}

	ok(c, "Return request rejected", nil)
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
)

func AdminListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	withdrawals, total, err := models.ListWithdrawals(page, limit, c.Query("status"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch withdrawal requests")
		return
	}

	ok(c, "", gin.H{
		"withdrawals": withdrawals,
		"total":       total,
		"page":        page,
	})
}

// AdminApproveWithdrawal marks a pending withdrawal as paid out. The
// wallet was already debited when the request was created.
func AdminApproveWithdrawal(c *gin.Context) {
	withdrawalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid withdrawal ID")
		return
	}

	var input struct {
		Remark string `json:"remark"`
	}
	_ = c.ShouldBindJSON(&input)

	if err := models.SetWithdrawalStatus(withdrawalID, models.WithdrawalApproved, input.Remark); err != nil {
		fail(c, http.StatusBadRequest, "Withdrawal is not pending")
		return
	}

	ok(c, "Withdrawal approved", nil)
}

// AdminRejectWithdrawal declines a pending withdrawal and returns the
// held amount to the user's wallet.
func AdminRejectWithdrawal(c *gin.Context) {
	withdrawalID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid withdrawal ID")
		return
	}

	var input struct {
		Remark string `json:"remark"`
	}
	_ = c.ShouldBindJSON(&input)

	request, err := models.GetWithdrawalByID(withdrawalID)
	if err != nil {
		fail(c, http.StatusNotFound, "Withdrawal request not found")
		return
	}

	if err := models.SetWithdrawalStatus(withdrawalID, models.WithdrawalRejected, input.Remark); err != nil {
		fail(c, http.StatusBadRequest, "Withdrawal is not pending")
		return
	}

	if err := models.CreditWallet(request.UserID, request.Amount, "Withdrawal request rejected"); err != nil {
		fail(c, http.StatusInternalServerError, "Withdrawal rejected but refund failed")
		return
	}

	ok(c, "Withdrawal rejected and amount returned to wallet", nil)
}

package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"stylehive/cache"
	"stylehive/database"
	"stylehive/models"
	"stylehive/payment"
)

const topUpTTL = 30 * time.Minute

// GetWallet returns the balance and transaction history.
func GetWallet(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	txns, err := models.GetWalletTransactions(userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}
	if txns == nil {
		txns = []models.WalletTransaction{}
	}

	ok(c, "", gin.H{
		"balance":      user.WalletBalance,
		"transactions": txns,
	})
}

// CreateTopUp starts a wallet top-up through the payment gateway. The
// pending amount is parked in Redis keyed by the gateway order id until
// the payment is verified.
func CreateTopUp(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	var input struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "A positive amount is required")
		return
	}

	gatewayOrderID, err := payment.CreateOrder(input.Amount, "INR", "topup_"+userID.Hex())
	if err != nil {
		log.Println("Gateway top-up order failed:", err)
		fail(c, http.StatusInternalServerError, "Payment gateway error, try again")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	err = cache.Client.Set(ctx, "topup:"+gatewayOrderID, input.Amount, topUpTTL).Err()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to stage top-up")
		return
	}

	ok(c, "", gin.H{
		"razorpay_order_id": gatewayOrderID,
		"amount":            input.Amount,
	})
}

// VerifyTopUp checks the gateway signature and credits the wallet.
func VerifyTopUp(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	var input struct {
		RazorpayOrderID string `json:"razorpay_order_id" binding:"required"`
		PaymentID       string `json:"razorpay_payment_id" binding:"required"`
		Signature       string `json:"razorpay_signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if !payment.VerifyPayment(input.RazorpayOrderID, input.PaymentID, input.Signature) {
		fail(c, http.StatusBadRequest, "Payment verification failed")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	amount, err := cache.Client.GetDel(ctx, "topup:"+input.RazorpayOrderID).Float64()
	if err != nil {
		fail(c, http.StatusBadRequest, "Unknown or expired top-up")
		return
	}

	if err := models.CreditWallet(userID, amount, "Wallet top-up"); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to credit wallet")
		return
	}

	ok(c, "Wallet credited", gin.H{"amount": amount})
}

// RequestWithdrawal debits the wallet up front and opens a pending
// withdrawal; a rejection credits the amount back.
func RequestWithdrawal(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	var input struct {
		Amount      float64 `json:"amount" binding:"required,gt=0"`
		BankAccount string  `json:"bank_account" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	err := models.DebitWallet(userID, input.Amount, "Withdrawal request")
	if err == models.ErrInsufficientFunds {
		fail(c, http.StatusBadRequest, "Insufficient wallet balance")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to debit wallet")
		return
	}

	request, err := models.CreateWithdrawal(models.WithdrawalRequest{
		UserID:      userID,
		Amount:      input.Amount,
		BankAccount: input.BankAccount,
	})
	if err != nil {
		_ = models.CreditWallet(userID, input.Amount, "Withdrawal request failed, refund")
		fail(c, http.StatusInternalServerError, "Failed to create withdrawal request")
		return
	}

	ok(c, "Withdrawal requested", gin.H{"request_id": request.ID.Hex()})
}

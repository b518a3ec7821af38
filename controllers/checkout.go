package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/database"
	"stylehive/models"
	"stylehive/payment"
	"stylehive/services"
)

// PlaceOrder turns the user's cart into an order. The cart is deleted on
// success, so submitting the same checkout twice fails on the empty cart
// instead of duplicating the order.
func PlaceOrder(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	var input struct {
		AddressID     string `json:"addressId" binding:"required"`
		PaymentMethod string `json:"paymentMethod" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	switch input.PaymentMethod {
	case models.MethodCOD, models.MethodWallet, models.MethodRazorpay:
	default:
		fail(c, http.StatusBadRequest, "Unknown payment method")
		return
	}

	addressID, err := primitive.ObjectIDFromHex(input.AddressID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid address ID")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	address := user.AddressByID(addressID)
	if address == nil {
		fail(c, http.StatusBadRequest, "Address not found")
		return
	}

	lines, err := models.ResolveCartLines(userID)
	if err != nil || len(lines) == 0 {
		fail(c, http.StatusBadRequest, "Your cart is empty")
		return
	}

	discount, err := services.ComputeCartDiscount(lines)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to compute discount")
		return
	}

	// Tax and shipping are zero for now; the final amount identity still
	// holds once they carry real values.
	order := models.NewOrder(userID, *address, lines, discount, 0, 0, input.PaymentMethod)

	if !reserveStock(lines) {
		fail(c, http.StatusBadRequest, "One or more items are out of stock")
		return
	}

	switch input.PaymentMethod {
	case models.MethodWallet:
		err := models.DebitWallet(userID, order.FinalAmount, "Order payment")
		if err == models.ErrInsufficientFunds {
			releaseStock(lines)
			fail(c, http.StatusBadRequest, "Insufficient wallet balance")
			return
		}
		if err != nil {
			releaseStock(lines)
			fail(c, http.StatusInternalServerError, "Wallet debit failed")
			return
		}
		order.PaymentStatus = models.PaymentPaid
	case models.MethodRazorpay:
		gatewayOrderID, err := payment.CreateOrder(order.FinalAmount, "INR", userID.Hex())
		if err != nil {
			releaseStock(lines)
			log.Println("Gateway order creation failed:", err)
			fail(c, http.StatusInternalServerError, "Payment gateway error, try again")
			return
		}
		order.RazorpayOrderID = gatewayOrderID
		order.Status = models.OrderPaymentPending
	}

	created, err := models.CreateOrder(order)
	if err != nil {
		releaseStock(lines)
		if order.PaymentMethod == models.MethodWallet {
			_ = models.CreditWallet(userID, order.FinalAmount, "Order creation failed, refund")
		}
		fail(c, http.StatusInternalServerError, "Failed to place order")
		return
	}

	if err := models.DeleteCart(userID); err != nil {
		log.Println("Failed to clear cart after checkout:", err)
	}

	ok(c, "Order placed", gin.H{
		"order_id":          created.ID.Hex(),
		"final_amount":      created.FinalAmount,
		"razorpay_order_id": created.RazorpayOrderID,
	})
}

// reserveStock decrements variant stock for every line, rolling back on
// the first failure.
func reserveStock(lines []models.CartLine) bool {
	for i, line := range lines {
		if err := models.DecrementVariantStock(line.ProductID, line.VariantID, line.Quantity); err != nil {
			releaseStock(lines[:i])
			return false
		}
	}
	return true
}

func releaseStock(lines []models.CartLine) {
	for _, line := range lines {
		if err := models.RestoreVariantStock(line.ProductID, line.VariantID, line.Quantity); err != nil {
			log.Println("Failed to restore stock:", err)
		}
	}
}

// VerifyCheckoutPayment confirms a gateway payment for an order placed
// with the razorpay method.
func VerifyCheckoutPayment(c *gin.Context) {
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

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrderCollection.FindOne(ctx, bson.M{
		"razorpay_order_id": input.RazorpayOrderID,
		"user_id":           userID,
	}).Decode(&order)
	if err != nil {
		fail(c, http.StatusNotFound, "Order not found")
		return
	}

	// A replayed verification for an order that was already confirmed is a
	// no-op, and an order that has moved past payment_pending is closed to
	// payment updates entirely.
	if order.PaymentStatus == models.PaymentPaid {
		ok(c, "Payment already verified", gin.H{"order_id": order.ID.Hex()})
		return
	}
	if order.Status != models.OrderPaymentPending {
		fail(c, http.StatusBadRequest, "Order is not awaiting payment")
		return
	}

	if !payment.VerifyPayment(input.RazorpayOrderID, input.PaymentID, input.Signature) {
		_ = models.SetOrderPayment(order.ID, models.PaymentFailed, input.PaymentID)
		fail(c, http.StatusBadRequest, "Payment verification failed")
		return
	}

	if err := models.MarkOrderPaid(order.ID, input.PaymentID); err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			// Another verify won the race; the payment is recorded.
			ok(c, "Payment already verified", gin.H{"order_id": order.ID.Hex()})
			return
		}
		fail(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	ok(c, "Payment verified", gin.H{"order_id": order.ID.Hex()})
}

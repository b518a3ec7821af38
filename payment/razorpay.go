package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"math"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
)

var client *razorpay.Client

var keySecret string

// InitGateway sets up the Razorpay client used for wallet top-ups and
// online checkout.
func InitGateway() {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret = os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID == "" || keySecret == "" {
		log.Fatal("RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET not set in .env")
	}
	client = razorpay.NewClient(keyID, keySecret)
}

// CreateOrder creates a gateway order. The amount is in major currency
// units and is converted to minor units for the gateway.
func CreateOrder(amount float64, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": currency,
		"receipt":  receipt,
	}
	order, err := client.Order.Create(data, nil)
	if err != nil {
		return "", err
	}
	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", errors.New("gateway returned no order id")
	}
	return orderID, nil
}

// VerifySignature reports whether signature is the hex HMAC-SHA256 of
// "orderID|paymentID" under the given secret. The comparison is constant
// time over the full signature.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifyPayment checks a payment callback against the configured key secret.
func VerifyPayment(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, keySecret)
}

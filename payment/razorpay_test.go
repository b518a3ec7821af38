package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret_key"
	orderID := "order_MkWau2u1lZSTAa"
	paymentID := "pay_MkWbO9tGYPcsRk"

	valid := signPayload(orderID, paymentID, secret)
	assert.True(t, VerifySignature(orderID, paymentID, valid, secret))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	secret := "test_secret_key"
	orderID := "order_MkWau2u1lZSTAa"
	paymentID := "pay_MkWbO9tGYPcsRk"
	valid := signPayload(orderID, paymentID, secret)

	assert.False(t, VerifySignature("order_other", paymentID, valid, secret), "different order id")
	assert.False(t, VerifySignature(orderID, "pay_other", valid, secret), "different payment id")
	assert.False(t, VerifySignature(orderID, paymentID, valid, "wrong_secret"), "different secret")
	assert.False(t, VerifySignature(orderID, paymentID, "", secret), "empty signature")
	assert.False(t, VerifySignature(orderID, paymentID, "not-hex-at-all", secret), "garbage signature")
}

package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSignature(t *testing.T) {
	secret := "test_key_secret"
	orderID := "order_IluGWxBm9U8zJ8"
	paymentID := "pay_IluGWxBm9U8zJ9"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expected, GenerateSignature(orderID, paymentID, secret))
}

func TestVerifyPaymentSignature(t *testing.T) {
	secret := "test_key_secret"
	orderID := "order_IluGWxBm9U8zJ8"
	paymentID := "pay_IluGWxBm9U8zJ9"
	sig := GenerateSignature(orderID, paymentID, secret)

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, VerifyPaymentSignature(orderID, paymentID, sig, secret))
	})

	t.Run("tampered payment id", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, "pay_attacker", sig, secret))
	})

	t.Run("tampered signature", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, sig+"00", secret))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, sig, "other_secret"))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, VerifyPaymentSignature(orderID, paymentID, "", secret))
	})
}

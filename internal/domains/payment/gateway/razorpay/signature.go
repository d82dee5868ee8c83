package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// =====================================================
// RAZORPAY SIGNATURE
// =====================================================

// GenerateSignature generates the HMAC-SHA256 signature Razorpay
// attaches to a completed checkout.
//
// Razorpay Algorithm:
// 1. Build payload: "<razorpay_order_id>|<razorpay_payment_id>"
// 2. HMAC-SHA256(payload, keySecret)
// 3. Lowercase hex encode
func GenerateSignature(gatewayOrderID, paymentID, keySecret string) string {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyPaymentSignature verifies a checkout callback signature.
// Comparison is constant-time.
func VerifyPaymentSignature(gatewayOrderID, paymentID, signature, keySecret string) bool {
	if signature == "" {
		return false
	}
	expected := GenerateSignature(gatewayOrderID, paymentID, keySecret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

package gateway

import (
	"context"
)

// =====================================================
// GATEWAY INTERFACES
// =====================================================

// RazorpayGateway interface for Razorpay payment gateway integration
type RazorpayGateway interface {
	// CreateOrder creates a gateway-side order via the Razorpay Orders API
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error)

	// VerifySignature verifies a checkout callback signature
	VerifySignature(gatewayOrderID, paymentID, signature string) bool

	// KeyID returns the publishable key id handed to checkout clients
	KeyID() string

	// Configured reports whether both gateway credentials are present
	Configured() bool

	// SecretConfigured reports whether the signing secret is present;
	// signature verification needs nothing else
	SecretConfigured() bool
}

// =====================================================
// COMMON REQUEST/RESPONSE TYPES
// =====================================================

// CreateOrderRequest request to create a Razorpay order
type CreateOrderRequest struct {
	AmountMinor int64  // Amount in minor units (paise)
	Currency    string // ISO currency code, e.g. "INR"
	Receipt     string // Merchant order code for reconciliation
}

// CreateOrderResponse response from the Razorpay Orders API
type CreateOrderResponse struct {
	ID          string // Gateway order id ("order_...")
	AmountMinor int64  // Echoed amount in minor units
	Currency    string // Echoed currency code
	Receipt     string // Echoed receipt
	Status      string // Gateway order status ("created")
}

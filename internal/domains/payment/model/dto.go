package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateGatewayOrderRequest requests a gateway-side order for checkout.
// Amount is in major units (rupees); conversion to paise happens in the
// service layer.
type CreateGatewayOrderRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	OrderRef string          `json:"orderId"`
}

func (r CreateGatewayOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.By(positiveAmount)),
		validation.Field(&r.OrderRef, validation.Required, validation.Length(1, 128)),
	)
}

func positiveAmount(value interface{}) error {
	amount, ok := value.(decimal.Decimal)
	if !ok || !amount.IsPositive() {
		return validation.NewError("validation_amount", "must be a positive amount")
	}
	return nil
}

// VerifyPaymentRequest carries the checkout callback fields Razorpay
// hands the client after a successful payment.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
	OrderRef          string `json:"orderId"`
}

func (r VerifyPaymentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RazorpayOrderID, validation.Required),
		validation.Field(&r.RazorpayPaymentID, validation.Required),
		validation.Field(&r.RazorpaySignature, validation.Required),
		validation.Field(&r.OrderRef, validation.Required),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// GatewayOrderInfo is the subset of the gateway order echoed to the
// checkout client.
type GatewayOrderInfo struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateGatewayOrderResponse pairs the gateway order with the
// publishable key the checkout widget needs.
type CreateGatewayOrderResponse struct {
	Order GatewayOrderInfo `json:"order"`
	Key   string           `json:"key"`
}

// VerifyPaymentResponse reports the order's paid state after verification
type VerifyPaymentResponse struct {
	ID        uuid.UUID  `json:"id"`
	OrderCode string     `json:"orderCode"`
	IsPaid    bool       `json:"isPaid"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// PaymentConfigResponse exposes checkout configuration to clients.
// The key secret never leaves the server.
type PaymentConfigResponse struct {
	KeyID      string `json:"keyId"`
	Configured bool   `json:"configured"`
}

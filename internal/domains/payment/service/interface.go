package service

import (
	"context"

	"megamart-backend/internal/domains/payment/model"
)

// PaymentService drives the Razorpay checkout flow: gateway order
// creation before checkout, signature verification after it.
type PaymentService interface {
	// CreateGatewayOrder creates a gateway-side order for an amount and
	// links it to the referenced store order.
	CreateGatewayOrder(ctx context.Context, req model.CreateGatewayOrderRequest) (*model.CreateGatewayOrderResponse, error)

	// VerifyPayment verifies the checkout callback signature and, on
	// success, marks the matched order paid. Re-verifying an
	// already-paid order with a valid signature is a no-op success.
	VerifyPayment(ctx context.Context, req model.VerifyPaymentRequest) (*model.VerifyPaymentResponse, error)

	// Config returns the client-side checkout configuration
	Config() model.PaymentConfigResponse
}

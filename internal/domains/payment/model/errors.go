package model

import (
	"errors"
	"fmt"
)

// =====================================================
// PAYMENT ERROR CODES
// =====================================================

const (
	ErrCodeValidation       = "PAY001" // Request failed validation
	ErrCodeOrderNotFound    = "PAY002" // No store order matched the reference
	ErrCodeInvalidSignature = "PAY003" // HMAC signature mismatch
	ErrCodeConfig           = "PAY004" // Gateway credentials missing
	ErrCodeGateway          = "PAY005" // Upstream gateway call failed
)

// =====================================================
// SENTINEL ERRORS
// =====================================================

var (
	ErrOrderNotFound    = errors.New("order not found for payment reference")
	ErrInvalidSignature = errors.New("payment signature verification failed")
	ErrGatewayNotReady  = errors.New("payment gateway is not configured")
	ErrInvalidAmount    = errors.New("amount has more than two decimal places")
)

// =====================================================
// ERROR TYPES
// =====================================================

// PaymentError wraps payment failures with a stable code for handlers
type PaymentError struct {
	Code    string
	Message string
	Err     error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

// NewPaymentError creates a payment error with a code
func NewPaymentError(code, message string, err error) *PaymentError {
	return &PaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(err error) *PaymentError {
	return NewPaymentError(ErrCodeValidation, "invalid payment request", err)
}

func NewOrderNotFoundError(ref string) *PaymentError {
	return NewPaymentError(ErrCodeOrderNotFound, fmt.Sprintf("no order matches reference %q", ref), ErrOrderNotFound)
}

func NewInvalidSignatureError() *PaymentError {
	return NewPaymentError(ErrCodeInvalidSignature, "signature verification failed", ErrInvalidSignature)
}

func NewConfigError() *PaymentError {
	return NewPaymentError(ErrCodeConfig, "payment gateway credentials are not configured", ErrGatewayNotReady)
}

func NewGatewayError(err error) *PaymentError {
	return NewPaymentError(ErrCodeGateway, "payment gateway request failed", err)
}

// GatewayError carries the upstream error envelope from Razorpay
// so handlers can surface the gateway's own description verbatim.
type GatewayError struct {
	StatusCode  int    // HTTP status from the gateway
	GatewayCode string // Razorpay error code, e.g. "BAD_REQUEST_ERROR"
	Description string // Razorpay error description
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("razorpay: %s (%s, http %d)", e.Description, e.GatewayCode, e.StatusCode)
}

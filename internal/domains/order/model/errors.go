package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeOrderNotFound     = "ORD001"
	ErrCodeInvalidOrder      = "ORD002"
	ErrCodeOrderNotDelivered = "ORD003"
	ErrCodeOrderReturned     = "ORD004"
	ErrCodeVersionMismatch   = "ORD005"
	ErrCodeUnauthorized      = "ORD006"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrCartEmpty            = errors.New("order must contain at least one item")
	ErrOrderNotDelivered    = errors.New("order has not been delivered yet")
	ErrOrderAlreadyReturned = errors.New("order has already been returned")
	ErrVersionMismatch      = errors.New("version mismatch - concurrent modification detected")
	ErrUnauthorized         = errors.New("unauthorized access")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type OrderError struct {
	Code    string
	Message string
	Err     error
}

func (e *OrderError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError creates a new OrderError
func NewOrderError(code, message string, err error) *OrderError {
	return &OrderError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

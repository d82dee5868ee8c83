package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// ORDER STATUS CONSTANTS
// =====================================================
const (
	OrderStatusPlaced    = "placed"
	OrderStatusDelivered = "delivered"
	OrderStatusReturned  = "returned"
)

// =====================================================
// PAYMENT METHOD CONSTANTS
// =====================================================
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodRazorpay = "razorpay"
)

// =====================================================
// PAYMENT RESULT STATUS CONSTANTS
// =====================================================
const (
	PaymentResultStatusCreated   = "created"
	PaymentResultStatusCompleted = "completed"
)

// =====================================================
// ENTITY: Order
// =====================================================
type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderCode       string          `json:"order_code"`
	UserID          uuid.UUID       `json:"user_id"`
	UserEmail       string          `json:"user_email"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentResult   *PaymentResult  `json:"payment_result,omitempty"`
	ItemsPrice      decimal.Decimal `json:"items_price"`
	TaxPrice        decimal.Decimal `json:"tax_price"`
	ShippingPrice   decimal.Decimal `json:"shipping_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	IsPaid          bool            `json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	IsReturned      bool            `json:"is_returned"`
	ReturnedAt      *time.Time      `json:"returned_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// Status derives the lifecycle state from the flags:
// placed -> delivered -> returned.
func (o *Order) Status() string {
	switch {
	case o.IsReturned:
		return OrderStatusReturned
	case o.IsDelivered:
		return OrderStatusDelivered
	default:
		return OrderStatusPlaced
	}
}

// CanBeReturned checks the return guard: only delivered, not yet
// returned orders may be returned.
func (o *Order) CanBeReturned() bool {
	return o.IsDelivered && !o.IsReturned
}

// RequiresOnlinePayment checks if the order pays through the gateway
func (o *Order) RequiresOnlinePayment() bool {
	return o.PaymentMethod == PaymentMethodRazorpay
}

// IsCOD checks if order is cash on delivery
func (o *Order) IsCOD() bool {
	return o.PaymentMethod == PaymentMethodCOD
}

// =====================================================
// ENTITY: OrderItem
// =====================================================
// Line items are snapshots taken at order creation; later catalog
// edits never alter them.
type OrderItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

// LineTotal calculates price * quantity for this line
func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.Price.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// =====================================================
// ENTITY: ShippingAddress
// =====================================================
type ShippingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// =====================================================
// ENTITY: PaymentResult
// =====================================================
// Populated progressively as payment proceeds: the gateway order id
// and "created" status at gateway-order creation, then the payment id
// and "completed" status after signature verification. Each field is
// written once per step.
type PaymentResult struct {
	PaymentID      string `json:"id,omitempty"`
	GatewayOrderID string `json:"order_id,omitempty"`
	Status         string `json:"status,omitempty"`
	UpdateTime     string `json:"update_time,omitempty"`
	PayerEmail     string `json:"email_address,omitempty"`
}

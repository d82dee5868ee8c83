package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =====================================================
// CREATE ORDER REQUEST
// =====================================================
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"orderItems"`
	ShippingAddress ShippingAddress   `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
}

type CreateOrderItem struct {
	ProductID uuid.UUID       `json:"product"`
	Name      string          `json:"name"`
	Quantity  int             `json:"qty"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
}

// Validate validates CreateOrderRequest
func (req CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Items, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In(
			PaymentMethodCOD,
			PaymentMethodRazorpay,
		)),
	)
}

// Validate validates one submitted line item
func (it CreateOrderItem) Validate() error {
	return validation.ValidateStruct(&it,
		validation.Field(&it.ProductID, validation.Required),
		validation.Field(&it.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&it.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&it.Price, validation.By(nonNegativeDecimal)),
	)
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_decimal", "must be a decimal amount")
	}
	if d.IsNegative() {
		return validation.NewError("validation_negative", "must not be negative")
	}
	return nil
}

// =====================================================
// ORDER DETAIL RESPONSE
// =====================================================
type OrderDetailResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderCode       string          `json:"order_code"`
	Status          string          `json:"status"`
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
}

// NewOrderDetailResponse maps an order entity to the wire shape
func NewOrderDetailResponse(o *Order) *OrderDetailResponse {
	return &OrderDetailResponse{
		ID:              o.ID,
		OrderCode:       o.OrderCode,
		Status:          o.Status(),
		Items:           o.Items,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		PaymentResult:   o.PaymentResult,
		ItemsPrice:      o.ItemsPrice,
		TaxPrice:        o.TaxPrice,
		ShippingPrice:   o.ShippingPrice,
		TotalPrice:      o.TotalPrice,
		IsPaid:          o.IsPaid,
		PaidAt:          o.PaidAt,
		IsDelivered:     o.IsDelivered,
		DeliveredAt:     o.DeliveredAt,
		IsReturned:      o.IsReturned,
		ReturnedAt:      o.ReturnedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// =====================================================
// ORDER SUMMARY RESPONSE
// =====================================================
// Compact shape for list views; omits line items and address.
type OrderSummaryResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderCode   string          `json:"order_code"`
	Status      string          `json:"status"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	IsPaid      bool            `json:"is_paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	IsDelivered bool            `json:"is_delivered"`
	DeliveredAt *time.Time      `json:"delivered_at,omitempty"`
	IsReturned  bool            `json:"is_returned"`
	ReturnedAt  *time.Time      `json:"returned_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewOrderSummaryResponse maps an order entity to the list shape
func NewOrderSummaryResponse(o *Order) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:          o.ID,
		OrderCode:   o.OrderCode,
		Status:      o.Status(),
		TotalPrice:  o.TotalPrice,
		IsPaid:      o.IsPaid,
		PaidAt:      o.PaidAt,
		IsDelivered: o.IsDelivered,
		DeliveredAt: o.DeliveredAt,
		IsReturned:  o.IsReturned,
		ReturnedAt:  o.ReturnedAt,
		CreatedAt:   o.CreatedAt,
	}
}

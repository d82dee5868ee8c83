package email

// OrderConfirmationData is the payload for the order confirmation
// email, enqueued when an order is placed.
type OrderConfirmationData struct {
	Email         string `json:"email"`
	OrderCode     string `json:"order_code"`
	Total         string `json:"total"`
	PaymentMethod string `json:"payment_method"`
	PlacedAt      string `json:"placed_at"` // RFC3339
}

// PaymentReceiptData is the payload for the payment receipt email,
// enqueued after a successful payment verification.
type PaymentReceiptData struct {
	Email     string `json:"email"`
	OrderCode string `json:"order_code"`
	PaymentID string `json:"payment_id"`
	Total     string `json:"total"`
	PaidAt    string `json:"paid_at"` // RFC3339
}

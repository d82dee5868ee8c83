package shared

// Asynq task types
const (
	TypeSendOrderConfirmation = "email:order_confirmation"
	TypeSendPaymentReceipt    = "email:payment_receipt"
	TypeDeliverDueOrders      = "order:deliver_due"
)

// Asynq queue names
const (
	QueueEmail = "email"
	QueueOrder = "order"
)

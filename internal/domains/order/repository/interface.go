package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"megamart-backend/internal/domains/order/model"
)

// OrderRepository is the persistence contract for orders.
type OrderRepository interface {
	// Create persists a new order; fills CreatedAt/UpdatedAt
	Create(ctx context.Context, order *model.Order) error

	// Lookups
	GetByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error)
	GetByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error)
	GetByOrderCode(ctx context.Context, orderCode string) (*model.Order, error)
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error)

	// GetByCreatedWithin finds the single order created inside
	// [center-window, center+window). Best-effort heuristic lookup.
	GetByCreatedWithin(ctx context.Context, center time.Time, window time.Duration) (*model.Order, error)

	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// AttachGatewayOrder records the local<->gateway linkage made at
	// gateway-order creation: payment method + payment result.
	AttachGatewayOrder(ctx context.Context, orderID uuid.UUID, paymentMethod string, result *model.PaymentResult) error

	// MarkPaid flips is_paid false->true with a compare-and-swap on the
	// paid flag. Returns false when the order was already paid, so
	// concurrent duplicate callbacks produce at most one write.
	MarkPaid(ctx context.Context, orderID uuid.UUID, paidAt time.Time, result *model.PaymentResult) (bool, error)

	// MarkDeliveredDue flips every undelivered, unreturned order created
	// at or before the cutoff to delivered. Returns the affected ids.
	MarkDeliveredDue(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)

	// MarkReturned flips is_returned false->true, guarded on the order
	// being delivered and not yet returned.
	MarkReturned(ctx context.Context, orderID, userID uuid.UUID, returnedAt time.Time) error
}

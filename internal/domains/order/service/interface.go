package service

import (
	"context"

	"github.com/google/uuid"

	"megamart-backend/internal/domains/order/model"
)

// OrderService is the business-logic contract for orders.
type OrderService interface {
	// CreateOrder validates the submitted cart, snapshots the line
	// items, computes and freezes the totals, and persists the order.
	CreateOrder(ctx context.Context, userID uuid.UUID, userEmail string, req model.CreateOrderRequest) (*model.OrderDetailResponse, error)

	// GetOrder returns one of the caller's orders
	GetOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderDetailResponse, error)

	// ListOrders returns the caller's order summaries, newest first
	ListOrders(ctx context.Context, userID uuid.UUID) ([]model.OrderSummaryResponse, error)

	// ReturnOrder flips a delivered order to returned. Rejected when
	// the order is undelivered or already returned; irreversible.
	ReturnOrder(ctx context.Context, orderID, userID uuid.UUID) (*model.OrderDetailResponse, error)

	// DeliverDueOrders flips every order older than the fulfillment
	// window to delivered. Driven by the worker's scheduled job.
	DeliverDueOrders(ctx context.Context) (int, error)
}

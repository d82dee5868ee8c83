package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"megamart-backend/internal/domains/order/service"
)

// ============================================
// Deliver Due Orders Handler
// ============================================

// DeliverDueOrdersHandler runs the scheduled placed -> delivered
// transition. The scheduler enqueues it every minute; the handler is
// a thin shim over the order service.
type DeliverDueOrdersHandler struct {
	orderService service.OrderService
}

func NewDeliverDueOrdersHandler(orderService service.OrderService) *DeliverDueOrdersHandler {
	return &DeliverDueOrdersHandler{
		orderService: orderService,
	}
}

func (h *DeliverDueOrdersHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	count, err := h.orderService.DeliverDueOrders(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to deliver due orders")
		return fmt.Errorf("deliver due orders: %w", err)
	}

	if count > 0 {
		log.Info().
			Int("count", count).
			Msg("Marked due orders delivered")
	}

	return nil
}

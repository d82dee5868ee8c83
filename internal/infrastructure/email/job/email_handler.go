package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"megamart-backend/internal/infrastructure/email"
)

// ============================================
// Order Confirmation Handler
// ============================================

type OrderConfirmationHandler struct {
	emailService email.EmailService
}

func NewOrderConfirmationHandler(emailService email.EmailService) *OrderConfirmationHandler {
	return &OrderConfirmationHandler{
		emailService: emailService,
	}
}

func (h *OrderConfirmationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.OrderConfirmationData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal OrderConfirmation payload")
		return asynq.SkipRetry
	}

	log.Info().
		Str("email", payload.Email).
		Str("order_code", payload.OrderCode).
		Msg("Processing order confirmation email")

	if err := h.emailService.SendOrderConfirmation(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send order confirmation email")
		return fmt.Errorf("send order confirmation email: %w", err)
	}

	return nil
}

// ============================================
// Payment Receipt Handler
// ============================================

type PaymentReceiptHandler struct {
	emailService email.EmailService
}

func NewPaymentReceiptHandler(emailService email.EmailService) *PaymentReceiptHandler {
	return &PaymentReceiptHandler{
		emailService: emailService,
	}
}

func (h *PaymentReceiptHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.PaymentReceiptData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal PaymentReceipt payload")
		return asynq.SkipRetry
	}

	log.Info().
		Str("email", payload.Email).
		Str("order_code", payload.OrderCode).
		Msg("Processing payment receipt email")

	if err := h.emailService.SendPaymentReceipt(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send payment receipt email")
		return fmt.Errorf("send payment receipt email: %w", err)
	}

	return nil
}

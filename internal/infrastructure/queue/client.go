package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"megamart-backend/internal/infrastructure/email"
	"megamart-backend/internal/shared"
)

// Enqueuer is the producer side of the task queue. Used by services
// for fire-and-forget side effects (notification emails); failures are
// logged by callers and never block the primary request.
type Enqueuer interface {
	EnqueueOrderConfirmation(data email.OrderConfirmationData) error
	EnqueuePaymentReceipt(data email.PaymentReceiptData) error
	Close() error
}

type asynqEnqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisAddr, redisPassword string, redisDB int) Enqueuer {
	return &asynqEnqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (e *asynqEnqueuer) EnqueueOrderConfirmation(data email.OrderConfirmationData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal order confirmation payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendOrderConfirmation, payload)
	_, err = e.client.Enqueue(task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue order confirmation: %w", err)
	}
	return nil
}

func (e *asynqEnqueuer) EnqueuePaymentReceipt(data email.PaymentReceiptData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal payment receipt payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendPaymentReceipt, payload)
	_, err = e.client.Enqueue(task,
		asynq.Queue(shared.QueueEmail),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue payment receipt: %w", err)
	}
	return nil
}

func (e *asynqEnqueuer) Close() error {
	return e.client.Close()
}

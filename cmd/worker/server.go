package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"megamart-backend/internal/infrastructure/queue"
	"megamart-backend/internal/shared"
	"megamart-backend/pkg/container"
)

// asynqServer wraps asynq.Server for shutdown handling
type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer creates the Asynq server, registers task handlers,
// and starts consuming in a goroutine.
func setupAsynqServer(c *container.Container) *asynqServer {
	mux := asynq.NewServeMux()
	mux.Handle(shared.TypeSendOrderConfirmation, c.OrderConfirmationJob)
	mux.Handle(shared.TypeSendPaymentReceipt, c.PaymentReceiptJob)
	mux.Handle(shared.TypeDeliverDueOrders, c.DeliverDueOrdersJob)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueOrder: 10,
				shared.QueueEmail: 5,
			},
			Concurrency: 10,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

// asynqScheduler wraps the queue scheduler for shutdown handling
type asynqScheduler struct {
	*queue.Scheduler
}

// setupScheduler registers the periodic jobs and starts the scheduler
// in a goroutine.
func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register jobs: %v", err)
	}

	go func() {
		log.Println("[Scheduler] Starting...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[Scheduler] Failed: %v", err)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"megamart-backend/internal/shared"
	"megamart-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerDeliverDueOrdersJob()
}

// ================================================
// JOB 1: Deliver Due Orders (Every minute)
// ================================================
// Server-authoritative replacement for the storefront's old
// client-side delivery countdown: flips every order older than the
// fulfillment window to delivered.
func (s *Scheduler) registerDeliverDueOrdersJob() error {
	payload, err := json.Marshal(struct{}{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeDeliverDueOrders, payload)

	_, err = s.scheduler.Register(
		"* * * * *", // every minute
		task,
		asynq.Queue(shared.QueueOrder),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register DeliverDueOrders job", err)
		return err
	}

	logger.Info("Registered DeliverDueOrders: every minute", nil)
	return nil
}

func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}

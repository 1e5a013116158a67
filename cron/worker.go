package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"carebook/config"
	bookingRepo "carebook/database/repository/booking"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingExpire = "booking:expire"

// InitExpiryWorker runs the async worker and scheduler in the background.
// The periodic sweep cancels Pending bookings whose confirmation deadline
// has passed, so the deadline stored on a booking is actually enforced.
func InitExpiryWorker(repo bookingRepo.BookingRepository, logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingExpire, handleExpireTask(repo, logger))

	go func() {
		log.Println("[ExpiryWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[ExpiryWorker] failed to start worker: %v", err)
		}
	}()

	sweepEvery := config.AppConfig.ExpirySweepMinutes
	if sweepEvery <= 0 {
		sweepEvery = 10
	}
	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	spec := fmt.Sprintf("@every %dm", sweepEvery)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeBookingExpire, nil)); err != nil {
		log.Fatalf("[ExpiryWorker] failed to register sweep task: %v", err)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[ExpiryWorker] failed to start scheduler: %v", err)
		}
	}()
}

func handleExpireTask(repo bookingRepo.BookingRepository, logger *zap.Logger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, _ *asynq.Task) error {
		swept, err := repo.ExpireStale(ctx, time.Now())
		if err != nil {
			logger.Error("expiry sweep failed", zap.Error(err))
			return err
		}
		if swept > 0 {
			logger.Info("expired stale pending bookings", zap.Int64("count", swept))
		}
		return nil
	}
}

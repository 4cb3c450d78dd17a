package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"slotwise/config"
	bookingRepo "slotwise/database/repository/bookingstore"
	"slotwise/services/availability"
	"slotwise/services/scheduling"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingRevalidate = "booking:revalidate"

// RevalidatePayload identifies the booking to re-check.
type RevalidatePayload struct {
	BookingID string `json:"bookingId"`
}

// NewRevalidateTask builds the asynq task for a booking.
func NewRevalidateTask(bookingID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RevalidatePayload{BookingID: bookingID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeBookingRevalidate, payload), nil
}

// RevalidationDeps are the collaborators the worker needs to replay a
// validation.
type RevalidationDeps struct {
	Bookings        bookingRepo.BookingRepository
	AvailabilitySvc availability.AvailabilityService
	Validator       *scheduling.ConflictValidator
	// VendorSources returns the vendor calendar sources for a host. The
	// native store is deliberately excluded: the booking under check
	// lives there and would collide with itself.
	VendorSources func(hostID string) []scheduling.ConflictSource
	Logger        *zap.Logger
}

// InitRevalidationWorker runs the async worker in background. It replays
// validation for upcoming bookings so drift in vendor calendars (an event
// added after the booking was admitted) is detected and logged.
func InitRevalidationWorker(deps RevalidationDeps) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingRevalidate, handleRevalidateTask(deps))

	go func() {
		log.Println("[RevalidationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RevalidationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RevalidationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// StartRevalidationScheduler periodically scans upcoming bookings and
// enqueues a revalidation task for each. Asynq deduplicates nothing here;
// replaying a clean booking is cheap and idempotent.
func StartRevalidationScheduler(deps RevalidationDeps, interval time.Duration, lookAhead time.Duration, batch int64) {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			bookings, err := deps.Bookings.ListUpcoming(ctx, time.Now(), batch)
			cancel()
			if err != nil {
				deps.Logger.Warn("failed to list upcoming bookings for revalidation", zap.Error(err))
				continue
			}
			for _, b := range bookings {
				if b.Start.After(time.Now().Add(lookAhead)) {
					break
				}
				task, err := NewRevalidateTask(b.ID)
				if err != nil {
					deps.Logger.Warn("failed to build revalidation task", zap.String("bookingID", b.ID), zap.Error(err))
					continue
				}
				if _, err := client.Enqueue(task); err != nil {
					deps.Logger.Warn("failed to enqueue revalidation task", zap.String("bookingID", b.ID), zap.Error(err))
				}
			}
		}
	}()
}

func handleRevalidateTask(deps RevalidationDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p RevalidatePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			deps.Logger.Error("invalid revalidation payload", zap.Error(err))
			return err
		}

		booking, err := deps.Bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			deps.Logger.Warn("booking not found for revalidation", zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		avail, err := deps.AvailabilitySvc.Get(ctx, booking.HostID)
		if err != nil {
			deps.Logger.Warn("availability not found for revalidation", zap.String("hostID", booking.HostID), zap.Error(err))
			return err
		}

		_, err = deps.Validator.ValidateBooking(
			ctx, booking.Window(), avail.Timezone, *avail, deps.VendorSources(booking.HostID))
		if err != nil {
			// The booking stands; drift is surfaced for operators, not
			// auto-cancelled.
			deps.Logger.Warn("committed booking no longer validates",
				zap.String("bookingID", p.BookingID),
				zap.String("hostID", booking.HostID),
				zap.Error(err))
			return nil
		}
		deps.Logger.Debug("booking revalidated cleanly", zap.String("bookingID", p.BookingID))
		return nil
	}
}

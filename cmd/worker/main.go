package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/pediclinic/booking-api/config"
	"github.com/pediclinic/booking-api/internal/notifier"
	"github.com/pediclinic/booking-api/internal/repository/postgres"
	"github.com/pediclinic/booking-api/internal/worker"
	"github.com/pediclinic/booking-api/pkg/clock"
	"github.com/pediclinic/booking-api/pkg/logger"
	"github.com/pediclinic/booking-api/pkg/metrics"
)

// The worker binary runs the background maintenance loops without the
// HTTP surface, so sweeps keep running through API deploys.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics("pediclinic", "worker")
	reservationRepo := postgres.NewReservationRepository(db, m)
	sweeper := worker.NewStalePendingWorker(reservationRepo, clock.System(), cfg.Booking.SweepInterval, appLogger)

	if cfg.Redis.URL != "" {
		notif, err := notifier.NewRedisNotifier(notifier.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer notif.Close()

		events, err := notif.Subscribe(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to subscribe to reservation changes")
		}
		go func() {
			for event := range events {
				appLogger.Info("reservation change",
					"type", string(event.Type),
					"reservation_id", event.ReservationID,
					"status", string(event.Status))
			}
		}()
	}

	appLogger.Info("starting worker", "sweep_interval", cfg.Booking.SweepInterval.String())
	sweeper.Start(ctx)
	appLogger.Info("worker stopped")
}

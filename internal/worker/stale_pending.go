package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/pediclinic/booking-api/internal/repository"
	"github.com/pediclinic/booking-api/pkg/clock"
	"github.com/pediclinic/booking-api/pkg/logger"
)

// StalePendingWorker cancels pending reservations whose date has
// already passed. A reservation the clinic never confirmed and the
// family never showed up for should not linger as pending forever.
type StalePendingWorker struct {
	repo          repository.ReservationRepository
	clock         clock.Clock
	sweepInterval time.Duration
	logger        *logger.Logger
}

func NewStalePendingWorker(repo repository.ReservationRepository, clk clock.Clock, sweepInterval time.Duration, log *logger.Logger) *StalePendingWorker {
	return &StalePendingWorker{
		repo:          repo,
		clock:         clk,
		sweepInterval: sweepInterval,
		logger:        log,
	}
}

func (w *StalePendingWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.sweep(ctx); err != nil {
				w.logger.Error(err, "stale pending sweep failed")
			}
		}
	}
}

func (w *StalePendingWorker) sweep(ctx context.Context) error {
	// Anything dated before today can no longer be confirmed.
	now := w.clock.Now()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rows, err := w.repo.CancelStalePending(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to cancel stale pending reservations: %w", err)
	}

	if rows > 0 {
		w.logger.Info("cancelled stale pending reservations", "count", rows, "cutoff", cutoff)
	}
	return nil
}

package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	// the happy path is one-directional
	assert.True(t, ReservationStatusPending.CanTransitionTo(ReservationStatusConfirmed))
	assert.True(t, ReservationStatusConfirmed.CanTransitionTo(ReservationStatusAttended))

	// no skipping and no going back
	assert.False(t, ReservationStatusPending.CanTransitionTo(ReservationStatusAttended))
	assert.False(t, ReservationStatusConfirmed.CanTransitionTo(ReservationStatusPending))
	assert.False(t, ReservationStatusAttended.CanTransitionTo(ReservationStatusConfirmed))

	// cancellation is reachable from any non-terminal status
	assert.True(t, ReservationStatusPending.CanTransitionTo(ReservationStatusCancelled))
	assert.True(t, ReservationStatusConfirmed.CanTransitionTo(ReservationStatusCancelled))
	assert.False(t, ReservationStatusAttended.CanTransitionTo(ReservationStatusCancelled))
	assert.False(t, ReservationStatusCancelled.CanTransitionTo(ReservationStatusCancelled))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, ReservationStatusPending.Terminal())
	assert.False(t, ReservationStatusConfirmed.Terminal())
	assert.True(t, ReservationStatusAttended.Terminal())
	assert.True(t, ReservationStatusCancelled.Terminal())
}

func TestReservationStartTime(t *testing.T) {
	r := &Reservation{
		Date:       time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		SlotHour:   14,
		SlotMinute: 30,
	}
	assert.Equal(t, time.Date(2025, 6, 20, 14, 30, 0, 0, time.UTC), r.StartTime())
	assert.Equal(t, "14:30 PM", r.Slot().Label())
}

func TestReservationActive(t *testing.T) {
	r := &Reservation{Status: ReservationStatusPending}
	assert.True(t, r.Active())
	r.Status = ReservationStatusCancelled
	assert.False(t, r.Active())
}

package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/pkg/clock"
	"github.com/pediclinic/booking-api/pkg/logger"
	"github.com/pediclinic/booking-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "availability")

// fakeReservationRepo serves canned reservations and can be forced to
// fail, standing in for the Postgres store.
type fakeReservationRepo struct {
	reservations []*model.Reservation
	err          error
}

func (f *fakeReservationRepo) Create(context.Context, *model.Reservation) error { return nil }

func (f *fakeReservationRepo) Get(context.Context, uuid.UUID) (*model.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationRepo) UpdateStatus(context.Context, uuid.UUID, model.ReservationStatus, string) error {
	return nil
}

func (f *fakeReservationRepo) ListActiveByProfessionalAndDate(context.Context, uuid.UUID, time.Time) ([]*model.Reservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.reservations, nil
}

func (f *fakeReservationRepo) ListByDateRange(context.Context, *model.ReservationFilters) ([]*model.Reservation, error) {
	return f.reservations, f.err
}

func (f *fakeReservationRepo) CancelStalePending(context.Context, time.Time) (int64, error) {
	return 0, f.err
}

func newTestService(repo *fakeReservationRepo, now time.Time) *Service {
	return NewService(repo, clock.Fixed(now), logger.NewLogger(nil), testMetrics)
}

func TestShiftBounds(t *testing.T) {
	start, end := ShiftBounds(&model.Professional{Shift: model.ShiftMorning})
	assert.Equal(t, 7, start)
	assert.Equal(t, 12, end)

	start, end = ShiftBounds(&model.Professional{Shift: model.ShiftAfternoon})
	assert.Equal(t, 13, start)
	assert.Equal(t, 18, end)

	start, end = ShiftBounds(&model.Professional{})
	assert.Equal(t, 8, start)
	assert.Equal(t, 17, end)
}

func TestCandidateDates(t *testing.T) {
	// Wednesday 2025-06-18
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeReservationRepo{}, now)

	dates := svc.CandidateDates([]string{"lunes", "miércoles"}, DefaultHorizon)
	require.Len(t, dates, 4)

	// merged ascending across both weekdays; today's weekday starts
	// next week
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC), dates[1])
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), dates[2])
	assert.Equal(t, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC), dates[3])
}

func TestCandidateDatesSkipsUnknownWeekday(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeReservationRepo{}, now)

	dates := svc.CandidateDates([]string{"feriado", "viernes"}, DefaultHorizon)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Friday, dates[0].Weekday())

	assert.Empty(t, svc.CandidateDates(nil, DefaultHorizon))
	assert.Empty(t, svc.CandidateDates([]string{"feriado"}, DefaultHorizon))
}

func TestSlotsForDate(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)
	professionalID := uuid.New()

	repo := &fakeReservationRepo{
		reservations: []*model.Reservation{
			{ProfessionalID: professionalID, Date: date, SlotHour: 8, SlotMinute: 0, Status: model.ReservationStatusPending},
		},
	}
	svc := newTestService(repo, now)

	professional := &model.Professional{Shift: model.ShiftMorning}
	professional.ID = professionalID
	service := &model.Service{DurationMinutes: 60}

	slots := svc.SlotsForDate(context.Background(), professional, service, date)
	require.Len(t, slots.All, 5)
	assert.Equal(t, "07:00 AM", slots.All[0].Label())
	assert.Equal(t, "11:00 AM", slots.All[4].Label())

	// the 08:00 slot is taken, the rest are free
	free := slots.Free()
	require.Len(t, free, 4)
	for _, s := range free {
		assert.NotEqual(t, model.Slot{Hour: 8}, s)
	}
}

func TestSlotsForDateDegradesOnStoreFailure(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	repo := &fakeReservationRepo{err: errors.New("connection refused")}
	svc := newTestService(repo, now)

	professional := &model.Professional{Shift: model.ShiftAfternoon}
	professional.ID = uuid.New()
	service := &model.Service{DurationMinutes: 30}

	// a failed occupancy lookup still yields the full grid, all free
	slots := svc.SlotsForDate(context.Background(), professional, service, now)
	require.Len(t, slots.All, 10)
	assert.Empty(t, slots.Occupied)
	assert.Len(t, slots.Free(), 10)
}

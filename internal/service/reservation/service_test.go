package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pediclinic/booking-api/internal/email"
	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/notifier"
	apperrors "github.com/pediclinic/booking-api/pkg/errors"
	"github.com/pediclinic/booking-api/pkg/logger"
	"github.com/pediclinic/booking-api/pkg/metrics"
)

var testMetrics = metrics.NewMetrics("test", "reservation")

// memoryReservationRepo is an in-memory stand-in for the Postgres store
// that enforces the same active-slot uniqueness rule.
type memoryReservationRepo struct {
	byID      map[uuid.UUID]*model.Reservation
	createErr error
	updateErr error
}

func newMemoryRepo() *memoryReservationRepo {
	return &memoryReservationRepo{byID: make(map[uuid.UUID]*model.Reservation)}
}

func (m *memoryReservationRepo) Create(_ context.Context, r *model.Reservation) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.byID {
		if existing.Active() &&
			existing.ProfessionalID == r.ProfessionalID &&
			existing.Date.Equal(r.Date) &&
			existing.SlotHour == r.SlotHour &&
			existing.SlotMinute == r.SlotMinute {
			return apperrors.SlotConflict(nil)
		}
	}
	r.ID = uuid.New()
	m.byID[r.ID] = r
	return nil
}

func (m *memoryReservationRepo) Get(_ context.Context, id uuid.UUID) (*model.Reservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NotFound("reservation", nil)
	}
	copied := *r
	return &copied, nil
}

func (m *memoryReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.ReservationStatus, reason string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	r, ok := m.byID[id]
	if !ok {
		return apperrors.NotFound("reservation", nil)
	}
	r.Status = status
	if reason != "" {
		r.Reason = reason
	}
	return nil
}

func (m *memoryReservationRepo) ListActiveByProfessionalAndDate(_ context.Context, professionalID uuid.UUID, date time.Time) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.byID {
		if r.Active() && r.ProfessionalID == professionalID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryReservationRepo) ListByDateRange(_ context.Context, _ *model.ReservationFilters) ([]*model.Reservation, error) {
	var out []*model.Reservation
	for _, r := range m.byID {
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryReservationRepo) CancelStalePending(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for _, r := range m.byID {
		if r.Status == model.ReservationStatusPending && r.Date.Before(before) {
			r.Status = model.ReservationStatusCancelled
			n++
		}
	}
	return n, nil
}

type fakeClientRepo struct {
	client *model.Client
}

func (f *fakeClientRepo) Create(context.Context, *model.Client) error { return nil }

func (f *fakeClientRepo) Get(context.Context, uuid.UUID) (*model.Client, error) {
	if f.client == nil {
		return nil, apperrors.NotFound("client", nil)
	}
	return f.client, nil
}

func (f *fakeClientRepo) GetByEmail(context.Context, string) (*model.Client, error) {
	return f.client, nil
}

func newTestSetup() (*Service, *memoryReservationRepo) {
	repo := newMemoryRepo()
	clients := &fakeClientRepo{client: &model.Client{Email: "familia@example.com"}}
	svc := NewService(repo, clients, notifier.Noop(), email.Noop(), logger.NewLogger(nil), testMetrics, time.Second)
	return svc, repo
}

func validReservation() *model.Reservation {
	return &model.Reservation{
		PatientID:      uuid.New(),
		ResponsibleID:  uuid.New(),
		ProfessionalID: uuid.New(),
		ServiceID:      uuid.New(),
		Date:           time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC),
		SlotHour:       9,
		SlotMinute:     30,
		Reason:         "Consulta - Control pediátrico",
	}
}

func TestCreate(t *testing.T) {
	svc, repo := newTestSetup()

	created, err := svc.Create(context.Background(), validReservation())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, model.ReservationStatusPending, created.Status)
	assert.Len(t, repo.byID, 1)
}

func TestCreateTruncatesDateToDay(t *testing.T) {
	svc, _ := newTestSetup()

	r := validReservation()
	r.Date = time.Date(2025, 6, 23, 15, 45, 12, 0, time.UTC)
	created, err := svc.Create(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC), created.Date)
}

func TestCreateRejectsIncomplete(t *testing.T) {
	svc, repo := newTestSetup()

	r := validReservation()
	r.PatientID = uuid.Nil
	_, err := svc.Create(context.Background(), r)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrIncompleteBooking, apperrors.CodeOf(err))
	assert.Empty(t, repo.byID)
}

func TestCreateSlotConflict(t *testing.T) {
	svc, _ := newTestSetup()

	first := validReservation()
	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)

	// same professional, date and slot for a different patient
	second := validReservation()
	second.ProfessionalID = first.ProfessionalID
	_, err = svc.Create(context.Background(), second)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrSlotConflict, apperrors.CodeOf(err))

	// the slot frees up once the first reservation is cancelled
	_, err = svc.Cancel(context.Background(), first.ID, "")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second)
	assert.NoError(t, err)
}

func TestCreateMapsStoreFailures(t *testing.T) {
	svc, repo := newTestSetup()

	repo.createErr = errors.New("connection refused")
	_, err := svc.Create(context.Background(), validReservation())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrUpstreamUnavailable, apperrors.CodeOf(err))

	repo.createErr = context.DeadlineExceeded
	_, err = svc.Create(context.Background(), validReservation())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTimeout, apperrors.CodeOf(err))
}

// blockingRepo never answers a create until the context gives up.
type blockingRepo struct {
	*memoryReservationRepo
}

func (b *blockingRepo) Create(ctx context.Context, _ *model.Reservation) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestCreateBoundsStoreCalls(t *testing.T) {
	repo := &blockingRepo{newMemoryRepo()}
	clients := &fakeClientRepo{client: &model.Client{Email: "familia@example.com"}}
	svc := NewService(repo, clients, notifier.Noop(), email.Noop(), logger.NewLogger(nil), testMetrics, 10*time.Millisecond)

	// the caller passes no deadline; the service's own store bound
	// converts the hung create into a Timeout
	_, err := svc.Create(context.Background(), validReservation())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTimeout, apperrors.CodeOf(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestLifecycle(t *testing.T) {
	svc, _ := newTestSetup()

	created, err := svc.Create(context.Background(), validReservation())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, confirmed.Status)

	attended, err := svc.MarkAttended(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusAttended, attended.Status)

	// attended is terminal
	_, err = svc.Cancel(context.Background(), created.ID, "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
}

func TestInvalidTransitions(t *testing.T) {
	svc, _ := newTestSetup()

	created, err := svc.Create(context.Background(), validReservation())
	require.NoError(t, err)

	// pending cannot jump straight to attended
	_, err = svc.MarkAttended(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))

	// confirming twice fails the second time
	_, err = svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
}

func TestCancelIsIdempotent(t *testing.T) {
	svc, _ := newTestSetup()

	created, err := svc.Create(context.Background(), validReservation())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), created.ID, "la familia no puede asistir")
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, cancelled.Status)
	assert.Equal(t, "la familia no puede asistir", cancelled.Reason)

	// second cancel is a no-op, not an error
	again, err := svc.Cancel(context.Background(), created.ID, "otra vez")
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, again.Status)
	assert.Equal(t, "la familia no puede asistir", again.Reason)
}

func TestCancelUnknownReservation(t *testing.T) {
	svc, _ := newTestSetup()

	_, err := svc.Cancel(context.Background(), uuid.New(), "")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

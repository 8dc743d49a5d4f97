package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pediclinic/booking-api/internal/email"
	"github.com/pediclinic/booking-api/internal/model"
	"github.com/pediclinic/booking-api/internal/notifier"
	"github.com/pediclinic/booking-api/internal/repository"
	apperrors "github.com/pediclinic/booking-api/pkg/errors"
	"github.com/pediclinic/booking-api/pkg/logger"
	"github.com/pediclinic/booking-api/pkg/metrics"
)

// Service owns the reservation lifecycle: creation with the slot
// uniqueness guard, the one-directional status machine, and the
// post-write notification fan-out.
type Service struct {
	repo         repository.ReservationRepository
	clients      repository.ClientRepository
	notifier     notifier.Notifier
	mailer       email.Service
	logger       *logger.Logger
	metrics      *metrics.Metrics
	storeTimeout time.Duration
}

func NewService(
	repo repository.ReservationRepository,
	clients repository.ClientRepository,
	notif notifier.Notifier,
	mailer email.Service,
	log *logger.Logger,
	m *metrics.Metrics,
	storeTimeout time.Duration,
) *Service {
	return &Service{
		repo:         repo,
		clients:      clients,
		notifier:     notif,
		mailer:       mailer,
		logger:       log,
		metrics:      m,
		storeTimeout: storeTimeout,
	}
}

// storeCtx bounds a single store call. The per-request deadline still
// applies; this one is tighter so a hung store surfaces as Timeout
// before the whole request gives up.
func (s *Service) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// Create persists a new reservation with status Pending. The store's
// partial unique index is the authoritative guard against double
// booking; a violation surfaces as SlotConflict and nothing is written.
// Notification failures after the write are logged for reconciliation,
// never propagated: the reservation exists either way.
func (s *Service) Create(ctx context.Context, r *model.Reservation) (*model.Reservation, error) {
	if err := s.validate(r); err != nil {
		return nil, err
	}

	r.Status = model.ReservationStatusPending
	r.Date = truncateToDay(r.Date)

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.repo.Create(storeCtx, r); err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrSlotConflict {
			s.metrics.SlotConflicts.Inc()
			return nil, err
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.Timeout("reservation create", err)
		}
		return nil, apperrors.UpstreamUnavailable("reservation", err)
	}

	s.metrics.ReservationsCreated.Inc()
	s.fanOut(ctx, r, notifier.EventCreated)
	return r, nil
}

func (s *Service) validate(r *model.Reservation) error {
	switch {
	case r.PatientID == uuid.Nil:
		return apperrors.IncompleteBooking("patient")
	case r.ResponsibleID == uuid.Nil:
		return apperrors.IncompleteBooking("responsible party")
	case r.ProfessionalID == uuid.Nil:
		return apperrors.IncompleteBooking("professional")
	case r.ServiceID == uuid.Nil:
		return apperrors.IncompleteBooking("service")
	case r.Date.IsZero():
		return apperrors.IncompleteBooking("date")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	return s.repo.Get(ctx, id)
}

// Confirm moves a pending reservation to confirmed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	return s.transition(ctx, id, model.ReservationStatusConfirmed, "")
}

// MarkAttended closes a confirmed reservation once the consultation is
// recorded against it.
func (s *Service) MarkAttended(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	return s.transition(ctx, id, model.ReservationStatusAttended, "")
}

// Cancel frees the reservation's slot. Cancelling an already-cancelled
// reservation is a no-op, not an error.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*model.Reservation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == model.ReservationStatusCancelled {
		return current, nil
	}
	if !current.Status.CanTransitionTo(model.ReservationStatusCancelled) {
		return nil, apperrors.BadRequest(
			fmt.Sprintf("cannot cancel a reservation in status %s", current.Status), nil)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.repo.UpdateStatus(storeCtx, id, model.ReservationStatusCancelled, reason); err != nil {
		return nil, apperrors.UpstreamUnavailable("reservation", err)
	}

	current.Status = model.ReservationStatusCancelled
	if reason != "" {
		current.Reason = reason
	}

	s.metrics.ReservationsCancelled.Inc()
	s.fanOut(ctx, current, notifier.EventCancelled)
	return current, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, next model.ReservationStatus, reason string) (*model.Reservation, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, apperrors.BadRequest(
			fmt.Sprintf("invalid transition %s -> %s", current.Status, next), nil)
	}

	storeCtx, cancel := s.storeCtx(ctx)
	defer cancel()

	if err := s.repo.UpdateStatus(storeCtx, id, next, reason); err != nil {
		return nil, apperrors.UpstreamUnavailable("reservation", err)
	}

	current.Status = next
	s.fanOut(ctx, current, notifier.EventStatusChanged)
	return current, nil
}

// ListActiveByProfessionalAndDate feeds the availability resolver.
func (s *Service) ListActiveByProfessionalAndDate(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*model.Reservation, error) {
	return s.repo.ListActiveByProfessionalAndDate(ctx, professionalID, date)
}

// ListByDateRange serves dashboards and appointment list views. With
// both bounds zero it returns everything.
func (s *Service) ListByDateRange(ctx context.Context, filters *model.ReservationFilters) ([]*model.Reservation, error) {
	return s.repo.ListByDateRange(ctx, filters)
}

// fanOut publishes the change event and sends mail. Both are best-effort
// after a successful write: failures are logged as reconciliation items
// because there is no transaction spanning the store and the side
// channels.
func (s *Service) fanOut(ctx context.Context, r *model.Reservation, event notifier.EventType) {
	change := &notifier.ChangeEvent{
		Type:           event,
		ReservationID:  r.ID.String(),
		ProfessionalID: r.ProfessionalID.String(),
		ResponsibleID:  r.ResponsibleID.String(),
		Date:           r.Date.Format("2006-01-02"),
		Status:         r.Status,
		At:             time.Now(),
	}
	if err := s.notifier.Publish(ctx, change); err != nil {
		s.metrics.NotifierPublishes.WithLabelValues(string(event), "error").Inc()
		s.logger.Error(err, "reservation written but change event not published, needs reconciliation",
			"reservation_id", r.ID.String(), "event", string(event))
	} else {
		s.metrics.NotifierPublishes.WithLabelValues(string(event), "ok").Inc()
	}

	client, err := s.clients.Get(ctx, r.ResponsibleID)
	if err != nil {
		s.logger.Warn("responsible party lookup failed, skipping mail",
			"reservation_id", r.ID.String())
		return
	}

	switch event {
	case notifier.EventCreated:
		err = s.mailer.SendReservationCreated(ctx, client.Email, r, r.Reason)
	case notifier.EventCancelled:
		err = s.mailer.SendReservationCancelled(ctx, client.Email, r)
	default:
		return
	}
	if err != nil {
		s.logger.Error(err, "reservation written but mail not sent, needs reconciliation",
			"reservation_id", r.ID.String(), "event", string(event))
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

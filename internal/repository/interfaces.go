package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pediclinic/booking-api/internal/model"
)

// All repository interfaces in one file
type (
	// ReservationRepository is the write-path contract for bookings.
	// Create must refuse a second active reservation for the same
	// (professional, date, slot) tuple; cancelled reservations do not
	// occupy their slot.
	ReservationRepository interface {
		Create(ctx context.Context, r *model.Reservation) error
		Get(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus, reason string) error
		ListActiveByProfessionalAndDate(ctx context.Context, professionalID uuid.UUID, date time.Time) ([]*model.Reservation, error)
		ListByDateRange(ctx context.Context, filters *model.ReservationFilters) ([]*model.Reservation, error)
		CancelStalePending(ctx context.Context, before time.Time) (int64, error)
	}

	ProfessionalRepository interface {
		Create(ctx context.Context, p *model.Professional) error
		Get(ctx context.Context, id uuid.UUID) (*model.Professional, error)
		Update(ctx context.Context, p *model.Professional) error
		ListByService(ctx context.Context, serviceID uuid.UUID) ([]*model.Professional, error)
		List(ctx context.Context) ([]*model.Professional, error)
	}

	ServiceRepository interface {
		Create(ctx context.Context, s *model.Service) error
		Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
		Update(ctx context.Context, s *model.Service) error
		ListActive(ctx context.Context) ([]*model.Service, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, p *model.Patient) error
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		ListByResponsible(ctx context.Context, responsibleID uuid.UUID) ([]*model.Patient, error)
	}

	ClientRepository interface {
		Create(ctx context.Context, c *model.Client) error
		Get(ctx context.Context, id uuid.UUID) (*model.Client, error)
		GetByEmail(ctx context.Context, email string) (*model.Client, error)
	}
)

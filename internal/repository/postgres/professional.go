package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pediclinic/booking-api/internal/model"
	apperrors "github.com/pediclinic/booking-api/pkg/errors"
)

func (r *professionalRepository) Create(ctx context.Context, p *model.Professional) error {
	query := `
		INSERT INTO professionals (
			id, name, email, shift, attendance_days, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Email, p.Shift, p.AttendanceDays, p.Active,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create professional: %w", err)
	}

	for _, serviceID := range p.ServiceIDs {
		if err := r.linkService(ctx, p.ID, serviceID); err != nil {
			return err
		}
	}
	return nil
}

func (r *professionalRepository) linkService(ctx context.Context, professionalID, serviceID uuid.UUID) error {
	query := `
		INSERT INTO professional_services (professional_id, service_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, professionalID, serviceID); err != nil {
		return fmt.Errorf("failed to link professional to service: %w", err)
	}
	return nil
}

func (r *professionalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	query := `
		SELECT id, name, email, shift, attendance_days, active, created_at, updated_at
		FROM professionals
		WHERE id = $1
	`
	var p model.Professional
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("professional", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get professional: %w", err)
	}
	return &p, nil
}

func (r *professionalRepository) Update(ctx context.Context, p *model.Professional) error {
	query := `
		UPDATE professionals
		SET name = $1, shift = $2, attendance_days = $3, active = $4, updated_at = $5
		WHERE id = $6
	`
	p.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Shift, p.AttendanceDays, p.Active, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update professional: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("professional", nil)
	}
	return nil
}

func (r *professionalRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*model.Professional, error) {
	query := `
		SELECT p.id, p.name, p.email, p.shift, p.attendance_days, p.active,
			   p.created_at, p.updated_at
		FROM professionals p
		JOIN professional_services ps ON ps.professional_id = p.id
		WHERE ps.service_id = $1
		AND p.active = true
		ORDER BY p.name ASC
	`
	var professionals []*model.Professional
	err := r.db.SelectContext(ctx, &professionals, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals by service: %w", err)
	}
	return professionals, nil
}

func (r *professionalRepository) List(ctx context.Context) ([]*model.Professional, error) {
	query := `
		SELECT id, name, email, shift, attendance_days, active, created_at, updated_at
		FROM professionals
		ORDER BY name ASC
	`
	var professionals []*model.Professional
	err := r.db.SelectContext(ctx, &professionals, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	return professionals, nil
}

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

func (r *patientRepository) Create(ctx context.Context, p *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, responsible_id, first_name, last_name, birth_date, document,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ResponsibleID, p.FirstName, p.LastName, p.BirthDate,
		p.Document, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, responsible_id, first_name, last_name, birth_date, document,
			   active, created_at, updated_at
		FROM patients
		WHERE id = $1
	`
	var p model.Patient
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("patient", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) ListByResponsible(ctx context.Context, responsibleID uuid.UUID) ([]*model.Patient, error) {
	query := `
		SELECT id, responsible_id, first_name, last_name, birth_date, document,
			   active, created_at, updated_at
		FROM patients
		WHERE responsible_id = $1
		AND active = true
		ORDER BY first_name ASC
	`
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query, responsibleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

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

func (r *clientRepository) Create(ctx context.Context, c *model.Client) error {
	query := `
		INSERT INTO clients (
			id, email, name, phone, password_hash, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Email, c.Name, c.Phone, c.PasswordHash, c.Active,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	query := `
		SELECT id, email, name, phone, password_hash, active, created_at, updated_at
		FROM clients
		WHERE id = $1
	`
	var c model.Client
	err := r.db.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("client", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	query := `
		SELECT id, email, name, phone, password_hash, active, created_at, updated_at
		FROM clients
		WHERE email = $1
	`
	var c model.Client
	err := r.db.GetContext(ctx, &c, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("client", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client by email: %w", err)
	}
	return &c, nil
}

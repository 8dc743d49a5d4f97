package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/pediclinic/booking-api/internal/model"
	apperrors "github.com/pediclinic/booking-api/pkg/errors"
)

// The reservations table carries a partial unique index so a slot can
// hold at most one active reservation:
//
//	CREATE UNIQUE INDEX reservations_active_slot_key
//	ON reservations (professional_id, date, slot_hour, slot_minute)
//	WHERE status <> 'cancelled';
//
// Create maps a violation of that index to SlotConflict, which is the
// only race-proof guard; the availability snapshot shown to the user is
// advisory.
const pqUniqueViolation = "23505"

// observe feeds the database operation counter and latency histogram.
// Use as: defer r.observe("create", time.Now())(&err)
func (r *reservationRepository) observe(op string, start time.Time) func(*error) {
	return func(errp *error) {
		status := "ok"
		if *errp != nil {
			status = "error"
		}
		r.metrics.DatabaseOperations.WithLabelValues(op, status).Inc()
		r.metrics.DatabaseLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) (err error) {
	defer r.observe("create", time.Now())(&err)

	query := `
		INSERT INTO reservations (
			id, patient_id, responsible_id, professional_id, service_id,
			date, slot_hour, slot_minute, reason, status, price,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	reservation.ID = uuid.New()
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = time.Now()

	_, err = r.db.ExecContext(ctx, query,
		reservation.ID,
		reservation.PatientID,
		reservation.ResponsibleID,
		reservation.ProfessionalID,
		reservation.ServiceID,
		reservation.Date,
		reservation.SlotHour,
		reservation.SlotMinute,
		reservation.Reason,
		reservation.Status,
		reservation.Price,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperrors.SlotConflict(err)
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) Get(ctx context.Context, id uuid.UUID) (_ *model.Reservation, err error) {
	defer r.observe("get", time.Now())(&err)

	query := `
		SELECT id, patient_id, responsible_id, professional_id, service_id,
			   date, slot_hour, slot_minute, reason, status, price,
			   created_at, updated_at
		FROM reservations
		WHERE id = $1
	`
	var reservation model.Reservation
	err = r.db.GetContext(ctx, &reservation, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("reservation", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	return &reservation, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ReservationStatus, reason string) (err error) {
	defer r.observe("update_status", time.Now())(&err)

	query := `
		UPDATE reservations
		SET status = $1, reason = COALESCE(NULLIF($2, ''), reason), updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query, status, reason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}

	var rows int64
	rows, err = result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("reservation", nil)
	}
	return nil
}

func (r *reservationRepository) ListActiveByProfessionalAndDate(ctx context.Context, professionalID uuid.UUID, date time.Time) (_ []*model.Reservation, err error) {
	defer r.observe("list_active", time.Now())(&err)

	query := `
		SELECT id, patient_id, responsible_id, professional_id, service_id,
			   date, slot_hour, slot_minute, reason, status, price,
			   created_at, updated_at
		FROM reservations
		WHERE professional_id = $1
		AND date = $2
		AND status <> 'cancelled'
		ORDER BY slot_hour ASC, slot_minute ASC
	`
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var reservations []*model.Reservation
	err = r.db.SelectContext(ctx, &reservations, query, professionalID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}
	return reservations, nil
}

func (r *reservationRepository) ListByDateRange(ctx context.Context, filters *model.ReservationFilters) (_ []*model.Reservation, err error) {
	defer r.observe("list_range", time.Now())(&err)

	query := `
		SELECT id, patient_id, responsible_id, professional_id, service_id,
			   date, slot_hour, slot_minute, reason, status, price,
			   created_at, updated_at
		FROM reservations
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if !filters.From.IsZero() {
		query += fmt.Sprintf(" AND date >= $%d", argCount)
		args = append(args, filters.From)
		argCount++
	}
	if !filters.To.IsZero() {
		query += fmt.Sprintf(" AND date <= $%d", argCount)
		args = append(args, filters.To)
		argCount++
	}
	if filters.ProfessionalID != uuid.Nil {
		query += fmt.Sprintf(" AND professional_id = $%d", argCount)
		args = append(args, filters.ProfessionalID)
		argCount++
	}
	if filters.PatientID != uuid.Nil {
		query += fmt.Sprintf(" AND patient_id = $%d", argCount)
		args = append(args, filters.PatientID)
		argCount++
	}
	if filters.ResponsibleID != uuid.Nil {
		query += fmt.Sprintf(" AND responsible_id = $%d", argCount)
		args = append(args, filters.ResponsibleID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	query += " ORDER BY date ASC, slot_hour ASC, slot_minute ASC"

	var reservations []*model.Reservation
	err = r.db.SelectContext(ctx, &reservations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (r *reservationRepository) CancelStalePending(ctx context.Context, before time.Time) (_ int64, err error) {
	defer r.observe("cancel_stale", time.Now())(&err)

	query := `
		UPDATE reservations
		SET status = 'cancelled', reason = 'expired without confirmation', updated_at = $1
		WHERE status = 'pending'
		AND date < $2
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), before)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel stale pending reservations: %w", err)
	}
	return result.RowsAffected()
}

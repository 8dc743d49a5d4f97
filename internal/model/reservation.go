package model

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusAttended  ReservationStatus = "attended"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Terminal reports whether no further transitions are allowed from s.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationStatusAttended || s == ReservationStatusCancelled
}

// CanTransitionTo enforces the one-directional status machine:
// pending -> confirmed -> attended, with cancellation allowed from any
// non-terminal status.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case ReservationStatusConfirmed:
		return s == ReservationStatusPending
	case ReservationStatusAttended:
		return s == ReservationStatusConfirmed
	case ReservationStatusCancelled:
		return true
	}
	return false
}

// Reservation is a booked appointment slot. Date holds the calendar day
// at midnight clinic time; Slot holds the time of day. The pair
// (professional, date, slot) is unique among non-cancelled reservations,
// enforced by the store.
type Reservation struct {
	Base
	PatientID      uuid.UUID         `db:"patient_id" json:"patient_id"`
	ResponsibleID  uuid.UUID         `db:"responsible_id" json:"responsible_id"`
	ProfessionalID uuid.UUID         `db:"professional_id" json:"professional_id"`
	ServiceID      uuid.UUID         `db:"service_id" json:"service_id"`
	Date           time.Time         `db:"date" json:"date"`
	SlotHour       int               `db:"slot_hour" json:"-"`
	SlotMinute     int               `db:"slot_minute" json:"-"`
	Reason         string            `db:"reason" json:"reason"`
	Status         ReservationStatus `db:"status" json:"status"`
	Price          float64           `db:"price" json:"price"`
}

// Slot returns the reservation's time of day as a structured value.
func (r *Reservation) Slot() Slot {
	return Slot{Hour: r.SlotHour, Minute: r.SlotMinute}
}

// StartTime combines Date and Slot into a single timestamp.
func (r *Reservation) StartTime() time.Time {
	return time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(),
		r.SlotHour, r.SlotMinute, 0, 0, r.Date.Location())
}

// Active reports whether the reservation occupies its slot.
func (r *Reservation) Active() bool {
	return r.Status != ReservationStatusCancelled
}

// ReservationFilters narrows range listings. Zero bounds are open ends.
type ReservationFilters struct {
	ProfessionalID uuid.UUID
	PatientID      uuid.UUID
	ResponsibleID  uuid.UUID
	Status         ReservationStatus
	From           time.Time
	To             time.Time
}

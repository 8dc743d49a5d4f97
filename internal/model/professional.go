package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Shift designates a professional's fixed daily working window. The
// start/end hours per shift are resolved by the availability service; a
// professional only carries the three-way designator.
type Shift string

const (
	ShiftMorning     Shift = "morning"
	ShiftAfternoon   Shift = "afternoon"
	ShiftUnspecified Shift = ""
)

// Professional is a staff member who can be booked. AttendanceDays holds
// weekday names as entered by administrative staff ("lunes", "miércoles",
// ...); they are normalized at use, not at rest. A professional with no
// attendance days yields no bookable dates.
type Professional struct {
	Base
	Name           string         `db:"name" json:"name"`
	Email          string         `db:"email" json:"email"`
	Shift          Shift          `db:"shift" json:"shift"`
	AttendanceDays pq.StringArray `db:"attendance_days" json:"attendance_days"`
	ServiceIDs     []uuid.UUID    `db:"-" json:"service_ids,omitempty"`
	Active         bool           `db:"active" json:"active"`
}

type CreateProfessionalRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Shift          Shift    `json:"shift" binding:"omitempty,oneof=morning afternoon"`
	AttendanceDays []string `json:"attendance_days" binding:"dive,weekday"`
	ServiceIDs     []string `json:"service_ids" binding:"dive,uuid"`
}

type UpdateProfessionalRequest struct {
	Name           *string   `json:"name"`
	Shift          *Shift    `json:"shift" binding:"omitempty,oneof=morning afternoon"`
	AttendanceDays *[]string `json:"attendance_days" binding:"omitempty,dive,weekday"`
	Active         *bool     `json:"active"`
}

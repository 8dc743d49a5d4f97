package model

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a child treated at the clinic. Every patient belongs to a
// responsible party (parent or guardian), who is the account that books
// appointments on the patient's behalf.
type Patient struct {
	Base
	ResponsibleID uuid.UUID `db:"responsible_id" json:"responsible_id"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	BirthDate     time.Time `db:"birth_date" json:"birth_date"`
	Document      string    `db:"document" json:"document,omitempty"`
	Active        bool      `db:"active" json:"active"`
}

// AgeAt returns the patient's age in whole years at the given moment.
func (p *Patient) AgeAt(t time.Time) int {
	years := t.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(t) {
		years--
	}
	return years
}

type CreatePatientRequest struct {
	FirstName string    `json:"first_name" binding:"required"`
	LastName  string    `json:"last_name" binding:"required"`
	BirthDate time.Time `json:"birth_date" binding:"required"`
	Document  string    `json:"document"`
}

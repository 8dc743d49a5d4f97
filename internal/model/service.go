package model

type ServiceCategory string

const (
	CategoryConsultation   ServiceCategory = "consultation"
	CategoryControl        ServiceCategory = "control"
	CategoryVaccine        ServiceCategory = "vaccine"
	CategoryStudy          ServiceCategory = "study"
	CategoryLab            ServiceCategory = "lab"
	CategorySpecialty      ServiceCategory = "specialty"
	CategoryAdministrative ServiceCategory = "administrative"
	CategoryOther          ServiceCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryConsultation, CategoryControl, CategoryVaccine, CategoryStudy,
		CategoryLab, CategorySpecialty, CategoryAdministrative, CategoryOther:
		return true
	}
	return false
}

// Service is a billable clinic offering. Services are never hard-deleted
// while reservations reference them; they are soft-disabled via Active.
type Service struct {
	Base
	Name            string          `db:"name" json:"name"`
	Category        ServiceCategory `db:"category" json:"category"`
	Description     string          `db:"description" json:"description,omitempty"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
	Price           float64         `db:"price" json:"price"`
	Active          bool            `db:"active" json:"active"`
}

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required"`
	Category        ServiceCategory `json:"category" binding:"required"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64         `json:"price" binding:"gte=0"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	Active          *bool    `json:"active"`
}

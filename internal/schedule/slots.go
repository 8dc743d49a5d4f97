package schedule

import (
	"github.com/pediclinic/booking-api/internal/model"
)

// GenerateSlots emits one slot every durationMinutes starting at
// startHour:00, stopping once the running clock reaches endHour:00.
// A non-positive duration or an inverted window yields no slots; neither
// is an error, the professional simply has nothing bookable.
func GenerateSlots(durationMinutes, startHour, endHour int) []model.Slot {
	if durationMinutes <= 0 {
		return nil
	}

	var slots []model.Slot
	current := startHour * 60
	end := endHour * 60

	for current < end {
		slots = append(slots, model.Slot{Hour: current / 60, Minute: current % 60})
		current += durationMinutes
	}
	return slots
}

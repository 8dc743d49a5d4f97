package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pediclinic/booking-api/internal/model"
)

func TestGenerateSlots(t *testing.T) {
	// 30-minute consultations in a one-hour window
	slots := GenerateSlots(30, 8, 9)
	assert.Equal(t, []model.Slot{{Hour: 8, Minute: 0}, {Hour: 8, Minute: 30}}, slots)
	assert.Equal(t, "08:00 AM", slots[0].Label())
	assert.Equal(t, "08:30 AM", slots[1].Label())

	// hour-long slots across the morning shift
	slots = GenerateSlots(60, 7, 12)
	assert.Len(t, slots, 5)
	assert.Equal(t, model.Slot{Hour: 7, Minute: 0}, slots[0])
	assert.Equal(t, model.Slot{Hour: 11, Minute: 0}, slots[4])

	// a duration that doesn't divide the window stops before the end
	slots = GenerateSlots(45, 8, 10)
	assert.Equal(t, []model.Slot{
		{Hour: 8, Minute: 0},
		{Hour: 8, Minute: 45},
		{Hour: 9, Minute: 30},
	}, slots)
}

func TestGenerateSlotsDegenerate(t *testing.T) {
	assert.Empty(t, GenerateSlots(0, 8, 17))
	assert.Empty(t, GenerateSlots(-15, 8, 17))
	assert.Empty(t, GenerateSlots(30, 12, 12))
	assert.Empty(t, GenerateSlots(30, 17, 8))
}

func TestGenerateSlotsAfternoonLabels(t *testing.T) {
	// afternoon hours keep 24-hour digits with a PM suffix
	slots := GenerateSlots(60, 13, 18)
	assert.Len(t, slots, 5)
	assert.Equal(t, "13:00 PM", slots[0].Label())
	assert.Equal(t, "17:00 PM", slots[4].Label())
}

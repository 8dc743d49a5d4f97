package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotLabel(t *testing.T) {
	// morning hours read as expected
	assert.Equal(t, "08:00 AM", Slot{Hour: 8}.Label())
	assert.Equal(t, "09:30 AM", Slot{Hour: 9, Minute: 30}.Label())

	// afternoon hours keep their 24-hour digits; "18:00 PM" is the
	// historical label format and must not become "06:00 PM"
	assert.Equal(t, "13:00 PM", Slot{Hour: 13}.Label())
	assert.Equal(t, "18:00 PM", Slot{Hour: 18}.Label())
	assert.Equal(t, "12:00 PM", Slot{Hour: 12}.Label())
	assert.Equal(t, "00:15 AM", Slot{Minute: 15}.Label())
}

func TestParseSlotLabel(t *testing.T) {
	slot, err := ParseSlotLabel("08:30 AM")
	require.NoError(t, err)
	assert.Equal(t, Slot{Hour: 8, Minute: 30}, slot)

	slot, err = ParseSlotLabel("18:00 PM")
	require.NoError(t, err)
	assert.Equal(t, Slot{Hour: 18, Minute: 0}, slot)

	// the suffix carries no information and is ignored
	slot, err = ParseSlotLabel("18:00 AM")
	require.NoError(t, err)
	assert.Equal(t, Slot{Hour: 18, Minute: 0}, slot)

	for _, bad := range []string{"", "noon", "25:00 PM", "10:75 AM", "10 AM"} {
		_, err := ParseSlotLabel(bad)
		assert.Error(t, err, bad)
	}
}

func TestSlotRoundTrip(t *testing.T) {
	for _, s := range []Slot{{Hour: 7}, {Hour: 11, Minute: 45}, {Hour: 17, Minute: 30}} {
		parsed, err := ParseSlotLabel(s.Label())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
}

func TestSlotOrdering(t *testing.T) {
	assert.True(t, Slot{Hour: 8, Minute: 30}.Before(Slot{Hour: 9}))
	assert.False(t, Slot{Hour: 9}.Before(Slot{Hour: 8, Minute: 30}))
	assert.Equal(t, 510, Slot{Hour: 8, Minute: 30}.Minutes())
}

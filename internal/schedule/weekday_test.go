package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/pediclinic/booking-api/pkg/errors"
)

func TestNormalizeWeekday(t *testing.T) {
	assert.Equal(t, "miercoles", NormalizeWeekday("Miércoles"))
	assert.Equal(t, "sabado", NormalizeWeekday("SÁBADO"))
	assert.Equal(t, "lunes", NormalizeWeekday("  lunes "))
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]time.Weekday{
		"lunes":     time.Monday,
		"Martes":    time.Tuesday,
		"miércoles": time.Wednesday,
		"miercoles": time.Wednesday,
		"jueves":    time.Thursday,
		"viernes":   time.Friday,
		"sábado":    time.Saturday,
		"domingo":   time.Sunday,
		"Wednesday": time.Wednesday,
	}
	for name, want := range cases {
		got, err := ParseWeekday(name)
		assert.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestParseWeekdayUnknown(t *testing.T) {
	_, err := ParseWeekday("someday")
	assert.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidWeekday, apperrors.CodeOf(err))

	_, err = ParseWeekday("")
	assert.Error(t, err)
}

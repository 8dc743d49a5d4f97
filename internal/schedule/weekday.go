package schedule

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pediclinic/booking-api/pkg/errors"
)

// Attendance days are entered by staff in Spanish, historically with and
// without diacritics ("miércoles" / "miercoles"). Instead of enumerating
// every spelling, names are normalized (lower-case, NFD decomposition,
// combining marks stripped) before lookup. English names are accepted too.
var weekdays = map[string]time.Weekday{
	"domingo":   time.Sunday,
	"lunes":     time.Monday,
	"martes":    time.Tuesday,
	"miercoles": time.Wednesday,
	"jueves":    time.Thursday,
	"viernes":   time.Friday,
	"sabado":    time.Saturday,

	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeWeekday folds case and strips diacritics from a weekday name.
func NormalizeWeekday(name string) string {
	folded := strings.ToLower(strings.TrimSpace(name))
	stripped, _, err := transform.String(stripMarks, folded)
	if err != nil {
		return folded
	}
	return stripped
}

// ParseWeekday resolves a weekday name to its time.Weekday. Unknown names
// fail with an InvalidWeekday error rather than defaulting.
func ParseWeekday(name string) (time.Weekday, error) {
	if day, ok := weekdays[NormalizeWeekday(name)]; ok {
		return day, nil
	}
	return time.Sunday, errors.InvalidWeekday(name)
}

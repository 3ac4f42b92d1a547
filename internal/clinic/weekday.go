package clinic

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Weekday is one of the seven attending days, starting on Monday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// AllWeekdays lists the days in calendar order.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = [...]string{"lunes", "martes", "miércoles", "jueves", "viernes", "sábado", "domingo"}

// keyed by the accent-free form
var weekdayByKey = map[string]Weekday{
	"lunes":     Monday,
	"martes":    Tuesday,
	"miercoles": Wednesday,
	"jueves":    Thursday,
	"viernes":   Friday,
	"sabado":    Saturday,
	"domingo":   Sunday,
}

// String returns the canonical day name.
func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of the seven defined days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ParseWeekday resolves a day name regardless of case, accents and
// surrounding whitespace.
func ParseWeekday(s string) (Weekday, error) {
	key, err := foldDayName(s)
	if err != nil {
		return 0, fmt.Errorf("%w: day %q: %v", ErrInvalidData, s, err)
	}
	d, ok := weekdayByKey[key]
	if !ok {
		return 0, fmt.Errorf("%w: unknown day %q", ErrInvalidData, s)
	}
	return d, nil
}

// WeekdayOf returns the attending day a calendar date falls on.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts on Sunday
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func foldDayName(s string) (string, error) {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.TrimSpace(s),
	)
	if err != nil {
		return "", err
	}
	return strings.ToLower(stripped), nil
}

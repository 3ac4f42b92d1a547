package clinic

import (
	"fmt"
	"strings"
	"time"
)

const (
	dateLayout      = "02/01/2006"
	dateParseLayout = "2/1/2006"
	timeOfDayLayout = "15:04"
)

// ParseDate parses a dd/mm/yyyy calendar date. Day and month may have one or
// two digits; out of range days such as 32/07/2025 are rejected.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidData)
	}
	t, err := time.Parse(dateParseLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, use dd/mm/yyyy", ErrInvalidData, s)
	}
	return t, nil
}

// FormatDate renders a date as dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses HH:MM with hour 0-23 and minute 0-59.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, fmt.Errorf("%w: time is required", ErrInvalidData)
	}
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: invalid time %q, use HH:MM", ErrInvalidData, s)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

package clinic

import (
	"fmt"
	"slices"
	"strings"
)

// Specialty is a named practice area attended on a fixed set of weekdays.
// It is immutable once built.
type Specialty struct {
	name string
	days []Weekday
}

// NewSpecialty validates the name and day list. Day names are matched
// without regard to case or accents and repeated days are collapsed.
func NewSpecialty(name string, days []string) (*Specialty, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: specialty name is required", ErrInvalidData)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: specialty %q needs at least one attending day", ErrInvalidData, name)
	}

	parsed := make([]Weekday, 0, len(days))
	for _, raw := range days {
		d, err := ParseWeekday(raw)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(parsed, d) {
			parsed = append(parsed, d)
		}
	}

	return &Specialty{name: name, days: parsed}, nil
}

func (s *Specialty) Name() string { return s.name }

// Days returns a copy of the attending days.
func (s *Specialty) Days() []Weekday {
	return slices.Clone(s.days)
}

// Covers reports whether the specialty is attended on d.
func (s *Specialty) Covers(d Weekday) bool {
	return slices.Contains(s.days, d)
}

// CoversDay is Covers for a raw day name. Unknown names are never covered.
func (s *Specialty) CoversDay(day string) bool {
	d, err := ParseWeekday(day)
	if err != nil {
		return false
	}
	return s.Covers(d)
}

func (s *Specialty) String() string {
	names := make([]string, len(s.days))
	for i, d := range s.days {
		names[i] = d.String()
	}
	return fmt.Sprintf("%s (days: %s)", s.name, strings.Join(names, ", "))
}

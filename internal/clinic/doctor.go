package clinic

import (
	"fmt"
	"strings"
	"sync"
)

// Doctor practices at most one specialty per weekday.
type Doctor struct {
	fullName  string
	licenseID string

	mu    sync.RWMutex
	byDay map[Weekday]*Specialty
}

func NewDoctor(fullName, licenseID string) (*Doctor, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: doctor name is required", ErrInvalidData)
	}
	if strings.TrimSpace(licenseID) == "" {
		return nil, fmt.Errorf("%w: doctor license is required", ErrInvalidData)
	}

	return &Doctor{
		fullName:  fullName,
		licenseID: licenseID,
		byDay:     make(map[Weekday]*Specialty),
	}, nil
}

func (d *Doctor) FullName() string  { return d.fullName }
func (d *Doctor) LicenseID() string { return d.licenseID }

// AddSpecialty assigns s to every weekday it covers. A day that already had
// a specialty is reassigned to s; the specialties displaced this way are
// returned so callers can report them.
func (d *Doctor) AddSpecialty(s *Specialty) ([]*Specialty, error) {
	if s == nil || len(s.days) == 0 {
		return nil, fmt.Errorf("%w: a valid specialty is required", ErrInvalidData)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.byDay == nil {
		d.byDay = make(map[Weekday]*Specialty)
	}

	var displaced []*Specialty
	for _, day := range s.days {
		if prev, ok := d.byDay[day]; ok && prev != s {
			displaced = append(displaced, prev)
		}
		d.byDay[day] = s
	}
	return displaced, nil
}

// SpecialtyForDay returns the specialty practiced on day, if any.
func (d *Doctor) SpecialtyForDay(day Weekday) (*Specialty, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s, ok := d.byDay[day]
	return s, ok
}

// Specialties returns each distinct specialty once, ordered by the first
// weekday it is practiced.
func (d *Doctor) Specialties() []*Specialty {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*Specialty
	seen := make(map[*Specialty]bool)
	for _, day := range AllWeekdays {
		s, ok := d.byDay[day]
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Schedule renders the day to specialty mapping, e.g. "lunes: Pediatría".
func (d *Doctor) Schedule() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []string
	for _, day := range AllWeekdays {
		if s, ok := d.byDay[day]; ok {
			out = append(out, day.String()+": "+s.name)
		}
	}
	return out
}

func (d *Doctor) String() string {
	schedule := d.Schedule()
	if len(schedule) == 0 {
		return fmt.Sprintf("Doctor: %s (license: %s)", d.fullName, d.licenseID)
	}
	return fmt.Sprintf("Doctor: %s (license: %s) [%s]", d.fullName, d.licenseID, strings.Join(schedule, ", "))
}

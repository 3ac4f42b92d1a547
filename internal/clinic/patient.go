package clinic

import (
	"fmt"
	"strings"
	"time"
)

// Patient is identified by an external ID (a national document number in
// practice) that must be unique within a Clinic.
type Patient struct {
	fullName  string
	id        string
	birthDate time.Time
}

// NewPatient validates the fields. Birth dates are only checked for format.
func NewPatient(fullName, id, birthDate string) (*Patient, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("%w: patient name is required", ErrInvalidData)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: patient id is required", ErrInvalidData)
	}
	born, err := ParseDate(birthDate)
	if err != nil {
		return nil, fmt.Errorf("birth date: %w", err)
	}

	return &Patient{fullName: fullName, id: id, birthDate: born}, nil
}

func (p *Patient) FullName() string     { return p.fullName }
func (p *Patient) ID() string           { return p.id }
func (p *Patient) BirthDate() time.Time { return p.birthDate }

func (p *Patient) String() string {
	return fmt.Sprintf("Patient: %s (ID: %s, born: %s)", p.fullName, p.id, FormatDate(p.birthDate))
}

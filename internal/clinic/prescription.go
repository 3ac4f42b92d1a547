package clinic

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Prescription records medications a doctor issued to a patient.
type Prescription struct {
	id           uuid.UUID
	patient      *Patient
	doctor       *Doctor
	date         time.Time
	medications  []string
	instructions string
}

func NewPrescription(patient *Patient, doctor *Doctor, date string, medications []string, instructions string) (*Prescription, error) {
	if patient == nil {
		return nil, fmt.Errorf("%w: a valid patient is required", ErrInvalidData)
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: a valid doctor is required", ErrInvalidData)
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if len(medications) == 0 {
		return nil, fmt.Errorf("%w: at least one medication is required", ErrInvalidData)
	}
	for i, m := range medications {
		if strings.TrimSpace(m) == "" {
			return nil, fmt.Errorf("%w: medication %d is empty", ErrInvalidData, i+1)
		}
	}
	if strings.TrimSpace(instructions) == "" {
		return nil, fmt.Errorf("%w: instructions are required", ErrInvalidData)
	}

	return &Prescription{
		id:           uuid.New(),
		patient:      patient,
		doctor:       doctor,
		date:         day,
		medications:  slices.Clone(medications),
		instructions: instructions,
	}, nil
}

func (p *Prescription) ID() uuid.UUID        { return p.id }
func (p *Prescription) Patient() *Patient    { return p.patient }
func (p *Prescription) Doctor() *Doctor      { return p.doctor }
func (p *Prescription) Date() time.Time      { return p.date }
func (p *Prescription) Instructions() string { return p.instructions }

// Medications returns a copy of the prescribed medications.
func (p *Prescription) Medications() []string {
	return slices.Clone(p.medications)
}

func (p *Prescription) String() string {
	return fmt.Sprintf("Prescription: %s - Patient: %s (ID: %s) - Doctor: %s - Medications: %s",
		FormatDate(p.date), p.patient.fullName, p.patient.id, p.doctor.fullName, strings.Join(p.medications, ", "))
}

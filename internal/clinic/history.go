package clinic

import (
	"fmt"
	"slices"
	"sync"
)

// ClinicalHistory is the append-only record of one patient's appointments
// and prescriptions, in the order they were added.
type ClinicalHistory struct {
	patient *Patient

	mu            sync.RWMutex
	appointments  []*Appointment
	prescriptions []*Prescription
}

func NewClinicalHistory(patient *Patient) (*ClinicalHistory, error) {
	if patient == nil {
		return nil, fmt.Errorf("%w: a valid patient is required", ErrInvalidData)
	}
	return &ClinicalHistory{patient: patient}, nil
}

func (h *ClinicalHistory) Patient() *Patient { return h.patient }

func (h *ClinicalHistory) AddAppointment(a *Appointment) error {
	if a == nil || a.patient == nil {
		return fmt.Errorf("%w: a valid appointment is required", ErrInvalidData)
	}
	if h.patient == nil {
		return fmt.Errorf("%w: history has no patient", ErrInvalidData)
	}
	if a.patient.id != h.patient.id {
		return fmt.Errorf("%w: appointment belongs to patient %s, not %s", ErrInvalidData, a.patient.id, h.patient.id)
	}

	h.mu.Lock()
	h.appointments = append(h.appointments, a)
	h.mu.Unlock()
	return nil
}

func (h *ClinicalHistory) AddPrescription(p *Prescription) error {
	if p == nil || p.patient == nil {
		return fmt.Errorf("%w: a valid prescription is required", ErrInvalidData)
	}
	if h.patient == nil {
		return fmt.Errorf("%w: history has no patient", ErrInvalidData)
	}
	if p.patient.id != h.patient.id {
		return fmt.Errorf("%w: prescription belongs to patient %s, not %s", ErrInvalidData, p.patient.id, h.patient.id)
	}

	h.mu.Lock()
	h.prescriptions = append(h.prescriptions, p)
	h.mu.Unlock()
	return nil
}

// Appointments returns a copy; changing it does not affect the history.
func (h *ClinicalHistory) Appointments() []*Appointment {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.appointments)
}

// Prescriptions returns a copy; changing it does not affect the history.
func (h *ClinicalHistory) Prescriptions() []*Prescription {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.prescriptions)
}

func (h *ClinicalHistory) String() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return fmt.Sprintf("Clinical history - Patient: %s (ID: %s) - %d appointments, %d prescriptions",
		h.patient.fullName, h.patient.id, len(h.appointments), len(h.prescriptions))
}

package clinic

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventPatientRegistered    = "patient.registered"
	EventDoctorRegistered     = "doctor.registered"
	EventSpecialtyAdded       = "specialty.added"
	EventAppointmentScheduled = "appointment.scheduled"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventPrescriptionIssued   = "prescription.issued"
)

// Notifier receives a notice after every successful change. Implementations
// must not block; the clinic calls them while holding its lock.
type Notifier interface {
	Notify(eventType, subject string, payload map[string]any)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, map[string]any) {}

type Option func(*Clinic)

func WithLogger(l *zap.Logger) Option {
	return func(c *Clinic) { c.log = l }
}

func WithNotifier(n Notifier) Option {
	return func(c *Clinic) { c.notifier = n }
}

// Clinic owns every registry and is the only way records are created or
// changed. It is safe for concurrent use: one lock serializes all mutation,
// including the slot scan and insert in ScheduleAppointment.
type Clinic struct {
	log      *zap.Logger
	notifier Notifier

	mu             sync.Mutex
	patients       map[string]*Patient
	patientOrder   []string
	doctors        map[string]*Doctor
	doctorOrder    []string
	histories      map[string]*ClinicalHistory
	appointments   []*Appointment
	appointmentsBy map[uuid.UUID]*Appointment
}

func New(opts ...Option) *Clinic {
	c := &Clinic{
		log:            zap.NewNop(),
		notifier:       nopNotifier{},
		patients:       make(map[string]*Patient),
		doctors:        make(map[string]*Doctor),
		histories:      make(map[string]*ClinicalHistory),
		appointmentsBy: make(map[uuid.UUID]*Appointment),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterPatient stores a new patient together with an empty clinical
// history. Either both are stored or neither is.
func (c *Clinic) RegisterPatient(fullName, id, birthDate string) (*Patient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.patients[id]; exists {
		return nil, fmt.Errorf("%w: a patient with id %s already exists", ErrInvalidData, id)
	}

	p, err := NewPatient(fullName, id, birthDate)
	if err != nil {
		return nil, err
	}
	h, err := NewClinicalHistory(p)
	if err != nil {
		return nil, err
	}

	c.patients[id] = p
	c.patientOrder = append(c.patientOrder, id)
	c.histories[id] = h

	c.log.Info("patient registered", zap.String("patient_id", id))
	c.notifier.Notify(EventPatientRegistered, id, map[string]any{
		"full_name":  p.fullName,
		"birth_date": FormatDate(p.birthDate),
	})
	return p, nil
}

func (c *Clinic) RegisterDoctor(fullName, licenseID string) (*Doctor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.doctors[licenseID]; exists {
		return nil, fmt.Errorf("%w: a doctor with license %s already exists", ErrInvalidData, licenseID)
	}

	d, err := NewDoctor(fullName, licenseID)
	if err != nil {
		return nil, err
	}

	c.doctors[licenseID] = d
	c.doctorOrder = append(c.doctorOrder, licenseID)

	c.log.Info("doctor registered", zap.String("license_id", licenseID))
	c.notifier.Notify(EventDoctorRegistered, licenseID, map[string]any{
		"full_name": d.fullName,
	})
	return d, nil
}

// AddSpecialtyToDoctor builds the specialty and assigns it to the doctor's
// attending days, replacing whatever the doctor practiced on those days.
func (c *Clinic) AddSpecialtyToDoctor(licenseID, specialtyName string, days []string) (*Specialty, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.doctors[licenseID]
	if !ok {
		return nil, fmt.Errorf("%w: no doctor with license %s", ErrDoctorNotFound, licenseID)
	}

	s, err := NewSpecialty(specialtyName, days)
	if err != nil {
		return nil, err
	}
	displaced, err := d.AddSpecialty(s)
	if err != nil {
		return nil, err
	}
	for _, prev := range displaced {
		c.log.Warn("specialty reassigned",
			zap.String("license_id", licenseID),
			zap.String("previous", prev.name),
			zap.String("current", s.name))
	}

	dayNames := make([]string, len(s.days))
	for i, day := range s.days {
		dayNames[i] = day.String()
	}
	c.notifier.Notify(EventSpecialtyAdded, licenseID, map[string]any{
		"specialty": s.name,
		"days":      dayNames,
	})
	return s, nil
}

// ScheduleAppointment books the slot if no scheduled or completed
// appointment already holds the same doctor, date and time. Cancelled
// appointments do not hold their slot.
func (c *Clinic) ScheduleAppointment(patientID, doctorLicense, date, at, specialtyName string) (*Appointment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.patients[patientID]
	if !ok {
		return nil, fmt.Errorf("%w: no patient with id %s", ErrPatientNotFound, patientID)
	}
	d, ok := c.doctors[doctorLicense]
	if !ok {
		return nil, fmt.Errorf("%w: no doctor with license %s", ErrDoctorNotFound, doctorLicense)
	}

	// A malformed date or time cannot hold a slot; let NewAppointment report it.
	if slot, ok := slotFor(doctorLicense, date, at); ok {
		for _, existing := range c.appointments {
			if existing.blocks(slot) {
				return nil, fmt.Errorf("%w: doctor %s is already booked on %s at %s",
					ErrSlotTaken, doctorLicense, FormatDate(slot.Date), slot.Time)
			}
		}
	}

	a, err := NewAppointment(p, d, date, at, specialtyName)
	if err != nil {
		return nil, err
	}
	if err := c.histories[patientID].AddAppointment(a); err != nil {
		return nil, fmt.Errorf("record appointment: %w", err)
	}
	c.appointments = append(c.appointments, a)
	c.appointmentsBy[a.id] = a

	c.log.Info("appointment scheduled",
		zap.String("appointment_id", a.id.String()),
		zap.String("patient_id", patientID),
		zap.String("slot", a.Slot().String()))
	c.notifier.Notify(EventAppointmentScheduled, a.id.String(), map[string]any{
		"patient_id":     patientID,
		"doctor_license": doctorLicense,
		"date":           FormatDate(a.date),
		"time":           a.time.String(),
		"specialty":      a.specialty,
	})
	return a, nil
}

func slotFor(doctorLicense, date, at string) (Slot, bool) {
	day, err := ParseDate(date)
	if err != nil {
		return Slot{}, false
	}
	tod, err := ParseTimeOfDay(at)
	if err != nil {
		return Slot{}, false
	}
	return Slot{DoctorLicense: doctorLicense, Date: day, Time: tod}, true
}

func (c *Clinic) CancelAppointment(id uuid.UUID) (*Appointment, error) {
	return c.changeStatus(id, (*Appointment).MarkCancelled, EventAppointmentCancelled)
}

func (c *Clinic) CompleteAppointment(id uuid.UUID) (*Appointment, error) {
	return c.changeStatus(id, (*Appointment).MarkCompleted, EventAppointmentCompleted)
}

func (c *Clinic) changeStatus(id uuid.UUID, mark func(*Appointment) error, eventType string) (*Appointment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.appointmentsBy[id]
	if !ok {
		return nil, fmt.Errorf("%w: no appointment with id %s", ErrAppointmentNotFound, id)
	}
	if err := mark(a); err != nil {
		return nil, err
	}

	c.log.Info("appointment status changed",
		zap.String("appointment_id", id.String()),
		zap.String("status", string(a.Status())))
	c.notifier.Notify(eventType, id.String(), map[string]any{
		"patient_id": a.patient.id,
		"slot":       a.Slot().String(),
	})
	return a, nil
}

func (c *Clinic) IssuePrescription(patientID, doctorLicense, date string, medications []string, instructions string) (*Prescription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.patients[patientID]
	if !ok {
		return nil, fmt.Errorf("%w: no patient with id %s", ErrPatientNotFound, patientID)
	}
	d, ok := c.doctors[doctorLicense]
	if !ok {
		return nil, fmt.Errorf("%w: no doctor with license %s", ErrDoctorNotFound, doctorLicense)
	}

	rx, err := NewPrescription(p, d, date, medications, instructions)
	if err != nil {
		return nil, err
	}
	if err := c.histories[patientID].AddPrescription(rx); err != nil {
		return nil, fmt.Errorf("record prescription: %w", err)
	}

	c.log.Info("prescription issued",
		zap.String("prescription_id", rx.id.String()),
		zap.String("patient_id", patientID),
		zap.String("license_id", doctorLicense))
	c.notifier.Notify(EventPrescriptionIssued, rx.id.String(), map[string]any{
		"patient_id":     patientID,
		"doctor_license": doctorLicense,
		"date":           FormatDate(rx.date),
		"medications":    strings.Join(rx.medications, ", "),
	})
	return rx, nil
}

func (c *Clinic) ClinicalHistory(patientID string) (*ClinicalHistory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.histories[patientID]
	if !ok {
		return nil, fmt.Errorf("%w: no clinical history for patient %s", ErrPatientNotFound, patientID)
	}
	return h, nil
}

// ListPatients returns the patients in registration order.
func (c *Clinic) ListPatients() []*Patient {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Patient, 0, len(c.patientOrder))
	for _, id := range c.patientOrder {
		out = append(out, c.patients[id])
	}
	return out
}

// ListDoctors returns the doctors in registration order.
func (c *Clinic) ListDoctors() []*Doctor {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Doctor, 0, len(c.doctorOrder))
	for _, id := range c.doctorOrder {
		out = append(out, c.doctors[id])
	}
	return out
}

// Appointments returns every appointment in booking order.
func (c *Clinic) Appointments() []*Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.appointments)
}

func (c *Clinic) FindPatient(id string) (*Patient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.patients[id]
	if !ok {
		return nil, fmt.Errorf("%w: no patient with id %s", ErrPatientNotFound, id)
	}
	return p, nil
}

func (c *Clinic) FindDoctor(licenseID string) (*Doctor, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, ok := c.doctors[licenseID]
	if !ok {
		return nil, fmt.Errorf("%w: no doctor with license %s", ErrDoctorNotFound, licenseID)
	}
	return d, nil
}

func (c *Clinic) FindAppointment(id uuid.UUID) (*Appointment, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.appointmentsBy[id]
	if !ok {
		return nil, fmt.Errorf("%w: no appointment with id %s", ErrAppointmentNotFound, id)
	}
	return a, nil
}

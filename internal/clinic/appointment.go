package clinic

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Slot identifies a doctor's booking position. Two live appointments may
// not share a slot.
type Slot struct {
	DoctorLicense string
	Date          time.Time
	Time          TimeOfDay
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s %s", s.DoctorLicense, FormatDate(s.Date), s.Time)
}

// Appointment books a patient with a doctor for the specialty the doctor
// practices on the appointment's weekday.
type Appointment struct {
	id        uuid.UUID
	patient   *Patient
	doctor    *Doctor
	date      time.Time
	time      TimeOfDay
	specialty string

	mu     sync.RWMutex
	status AppointmentStatus
}

// NewAppointment validates the booking against the doctor's weekly schedule.
// It fails with ErrDoctorUnavailable when the doctor does not attend on the
// date's weekday and with ErrInvalidSpecialty when the doctor attends a
// different specialty that day.
func NewAppointment(patient *Patient, doctor *Doctor, date, at, specialtyName string) (*Appointment, error) {
	if patient == nil {
		return nil, fmt.Errorf("%w: a valid patient is required", ErrInvalidData)
	}
	if doctor == nil {
		return nil, fmt.Errorf("%w: a valid doctor is required", ErrInvalidData)
	}
	if strings.TrimSpace(at) == "" {
		return nil, fmt.Errorf("%w: time is required", ErrInvalidData)
	}
	if strings.TrimSpace(specialtyName) == "" {
		return nil, fmt.Errorf("%w: specialty is required", ErrInvalidData)
	}
	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	weekday := WeekdayOf(day)
	practiced, ok := doctor.SpecialtyForDay(weekday)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not attend on %s", ErrDoctorUnavailable, doctor.fullName, weekday)
	}
	if practiced.Name() != specialtyName {
		return nil, fmt.Errorf("%w: %s attends %s on %s, not %s",
			ErrInvalidSpecialty, doctor.fullName, practiced.Name(), weekday, specialtyName)
	}

	// The schedule is checked before the time format, so a booking on a day
	// off reports the doctor as unavailable whatever the time says.
	tod, err := ParseTimeOfDay(at)
	if err != nil {
		return nil, err
	}

	return &Appointment{
		id:        uuid.New(),
		patient:   patient,
		doctor:    doctor,
		date:      day,
		time:      tod,
		specialty: specialtyName,
		status:    StatusScheduled,
	}, nil
}

func (a *Appointment) ID() uuid.UUID     { return a.id }
func (a *Appointment) Patient() *Patient { return a.patient }
func (a *Appointment) Doctor() *Doctor   { return a.doctor }
func (a *Appointment) Date() time.Time   { return a.date }
func (a *Appointment) Time() TimeOfDay   { return a.time }
func (a *Appointment) Specialty() string { return a.specialty }
func (a *Appointment) Weekday() Weekday  { return WeekdayOf(a.date) }

func (a *Appointment) Slot() Slot {
	return Slot{DoctorLicense: a.doctor.licenseID, Date: a.date, Time: a.time}
}

func (a *Appointment) Status() AppointmentStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// MarkCompleted moves a scheduled appointment to completed.
func (a *Appointment) MarkCompleted() error {
	return a.transition(StatusCompleted)
}

// MarkCancelled moves a scheduled appointment to cancelled, which releases
// its slot.
func (a *Appointment) MarkCancelled() error {
	return a.transition(StatusCancelled)
}

func (a *Appointment) transition(to AppointmentStatus) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.status != StatusScheduled {
		return fmt.Errorf("%w: appointment %s is %s, cannot become %s", ErrInvalidStatusTransition, a.id, a.status, to)
	}
	a.status = to
	return nil
}

// blocks reports whether a holds slot s.
func (a *Appointment) blocks(s Slot) bool {
	return a.Status() != StatusCancelled &&
		a.doctor.licenseID == s.DoctorLicense &&
		a.date.Equal(s.Date) &&
		a.time == s.Time
}

func (a *Appointment) String() string {
	return fmt.Sprintf("Appointment: %s at %s - Patient: %s (ID: %s) - Doctor: %s - Specialty: %s - Status: %s",
		FormatDate(a.date), a.time, a.patient.fullName, a.patient.id, a.doctor.fullName, a.specialty, a.Status())
}

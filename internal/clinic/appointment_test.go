package clinic

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	patient *Patient
	doctor  *Doctor
}

func newAppointmentFixture(t *testing.T) appointmentFixture {
	t.Helper()

	p, err := NewPatient("Juan Cruz", "12345678", "03/02/1980")
	require.NoError(t, err)
	d, err := NewDoctor("Dr. Juan García", "M12345")
	require.NoError(t, err)
	_, err = d.AddSpecialty(mustSpecialty(t, "Pediatría", "lunes", "miércoles", "viernes"))
	require.NoError(t, err)

	return appointmentFixture{patient: p, doctor: d}
}

func TestNewAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	a, err := NewAppointment(f.patient, f.doctor, "16/07/2025", "10:30", "Pediatría")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.Same(t, f.patient, a.Patient())
	assert.Same(t, f.doctor, a.Doctor())
	assert.Equal(t, "16/07/2025", FormatDate(a.Date()))
	assert.Equal(t, "10:30", a.Time().String())
	assert.Equal(t, "Pediatría", a.Specialty())
	assert.Equal(t, Wednesday, a.Weekday())
	assert.Equal(t, StatusScheduled, a.Status())
}

func TestNewAppointmentInvalidData(t *testing.T) {
	f := newAppointmentFixture(t)

	tests := []struct {
		name      string
		patient   *Patient
		doctor    *Doctor
		date, at  string
		specialty string
	}{
		{"nil patient", nil, f.doctor, "16/07/2025", "10:30", "Pediatría"},
		{"nil doctor", f.patient, nil, "16/07/2025", "10:30", "Pediatría"},
		{"empty date", f.patient, f.doctor, "", "10:30", "Pediatría"},
		{"iso date", f.patient, f.doctor, "2025-07-16", "10:30", "Pediatría"},
		{"day out of range", f.patient, f.doctor, "32/07/2025", "10:30", "Pediatría"},
		{"empty time", f.patient, f.doctor, "16/07/2025", "", "Pediatría"},
		{"hour out of range", f.patient, f.doctor, "16/07/2025", "25:30", "Pediatría"},
		{"minute out of range", f.patient, f.doctor, "16/07/2025", "10:70", "Pediatría"},
		{"empty specialty", f.patient, f.doctor, "16/07/2025", "10:30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAppointment(tt.patient, tt.doctor, tt.date, tt.at, tt.specialty)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestNewAppointmentDoctorUnavailable(t *testing.T) {
	f := newAppointmentFixture(t)

	// 17/07/2025 is a Thursday
	_, err := NewAppointment(f.patient, f.doctor, "17/07/2025", "10:30", "Pediatría")
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
	assert.ErrorIs(t, err, ErrClinic)
}

func TestNewAppointmentChecksScheduleBeforeTime(t *testing.T) {
	f := newAppointmentFixture(t)

	// Thursday is a day off, so the malformed time is never looked at.
	_, err := NewAppointment(f.patient, f.doctor, "17/07/2025", "25:99", "Pediatría")
	assert.ErrorIs(t, err, ErrDoctorUnavailable)

	_, err = NewAppointment(f.patient, f.doctor, "16/07/2025", "25:99", "Cardiología")
	assert.ErrorIs(t, err, ErrInvalidSpecialty)

	_, err = NewAppointment(f.patient, f.doctor, "16/07/2025", "25:99", "Pediatría")
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestNewAppointmentInvalidSpecialty(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := NewAppointment(f.patient, f.doctor, "16/07/2025", "10:30", "Cardiología")
	assert.ErrorIs(t, err, ErrInvalidSpecialty)

	_, err = NewAppointment(f.patient, f.doctor, "16/07/2025", "10:30", "pediatría")
	assert.ErrorIs(t, err, ErrInvalidSpecialty)
}

func TestAppointmentStatusTransitions(t *testing.T) {
	f := newAppointmentFixture(t)

	completed, err := NewAppointment(f.patient, f.doctor, "16/07/2025", "10:30", "Pediatría")
	require.NoError(t, err)
	require.NoError(t, completed.MarkCompleted())
	assert.Equal(t, StatusCompleted, completed.Status())

	cancelled, err := NewAppointment(f.patient, f.doctor, "16/07/2025", "11:30", "Pediatría")
	require.NoError(t, err)
	require.NoError(t, cancelled.MarkCancelled())
	assert.Equal(t, StatusCancelled, cancelled.Status())

	assert.ErrorIs(t, completed.MarkCancelled(), ErrInvalidStatusTransition)
	assert.ErrorIs(t, completed.MarkCompleted(), ErrInvalidStatusTransition)
	assert.ErrorIs(t, cancelled.MarkCompleted(), ErrInvalidStatusTransition)
	assert.Equal(t, StatusCompleted, completed.Status())
	assert.Equal(t, StatusCancelled, cancelled.Status())
	assert.True(t, cancelled.Status().Terminal())
	assert.False(t, StatusScheduled.Terminal())
}

func TestAppointmentSlotBlocking(t *testing.T) {
	f := newAppointmentFixture(t)

	a, err := NewAppointment(f.patient, f.doctor, "16/07/2025", "10:30", "Pediatría")
	require.NoError(t, err)

	slot, ok := slotFor("M12345", "16/7/2025", "10:30")
	require.True(t, ok)
	assert.True(t, a.blocks(slot))

	other, ok := slotFor("M12345", "16/07/2025", "10:31")
	require.True(t, ok)
	assert.False(t, a.blocks(other))

	require.NoError(t, a.MarkCancelled())
	assert.False(t, a.blocks(slot))
}

func TestAppointmentString(t *testing.T) {
	f := newAppointmentFixture(t)

	a, err := NewAppointment(f.patient, f.doctor, "16/07/2025", "10:30", "Pediatría")
	require.NoError(t, err)

	out := a.String()
	for _, want := range []string{"16/07/2025", "10:30", "Juan Cruz", "12345678", "Dr. Juan García", "Pediatría", "scheduled"} {
		assert.Contains(t, out, want)
	}
}

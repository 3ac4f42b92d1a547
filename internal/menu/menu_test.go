package menu

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-records/internal/clinic"
)

func run(t *testing.T, c *clinic.Clinic, lines ...string) string {
	t.Helper()

	var out bytes.Buffer
	m := New(c, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, m.Run())
	return out.String()
}

func TestRegisterAndList(t *testing.T) {
	c := clinic.New()

	out := run(t, c,
		"1", "Juan Cruz", "12345678", "03/02/1980",
		"7",
		"0",
	)

	assert.Contains(t, out, "Patient registered:")
	assert.Contains(t, out, "Patients (1):")
	assert.Contains(t, out, "1. Patient: Juan Cruz (ID: 12345678, born: 03/02/1980)")
	assert.Contains(t, out, "Goodbye!")
	require.Len(t, c.ListPatients(), 1)
}

func TestClinicErrorsArePrintedAndLoopContinues(t *testing.T) {
	c := clinic.New()

	out := run(t, c,
		"1", "Juan Cruz", "12345678", "32/07/2025",
		"1", "Juan Cruz", "12345678", "03/02/1980",
		"0",
	)

	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "Patient registered:")
	assert.Len(t, c.ListPatients(), 1)
}

func TestInvalidOption(t *testing.T) {
	out := run(t, clinic.New(), "42", "0")
	assert.Contains(t, out, "Invalid option")
}

func TestEndOfInputExits(t *testing.T) {
	var out bytes.Buffer
	m := New(clinic.New(), strings.NewReader("1\nJuan Cruz\n"), &out)

	require.NoError(t, m.Run())
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestFullWorkflow(t *testing.T) {
	c := clinic.New()

	out := run(t, c,
		"1", "Juan Cruz", "12345678", "03/02/1980",
		"2", "Dr. Juan García", "M12345",
		"3", "M12345", "Pediatría", "lunes, MIERCOLES, viernes",
		// 16/07/2025 is a Wednesday.
		"4", "12345678", "M12345", "16/07/2025", "10:00", "Pediatría",
		"4", "12345678", "M12345", "16/07/2025", "10:00", "Pediatría",
		"5", "12345678", "M12345", "16/07/2025", "Ibuprofeno 400mg, Paracetamol", "Cada 8 horas",
		"6", "12345678",
		"0",
	)

	assert.Contains(t, out, "Specialty added:\n   Pediatría (days: lunes, miércoles, viernes)")
	assert.Contains(t, out, "Appointment scheduled:")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "Prescription issued:")
	assert.Contains(t, out, "Instructions: Cada 8 horas")
	assert.Contains(t, out, "APPOINTMENTS:")
	assert.Contains(t, out, "PRESCRIPTIONS:")

	h, err := c.ClinicalHistory("12345678")
	require.NoError(t, err)
	assert.Len(t, h.Appointments(), 1)
	assert.Len(t, h.Prescriptions(), 1)
}

func TestCancelAndCompleteAppointment(t *testing.T) {
	c := clinic.New()
	_, err := c.RegisterPatient("Juan Cruz", "12345678", "03/02/1980")
	require.NoError(t, err)
	_, err = c.RegisterDoctor("Dr. Juan García", "M12345")
	require.NoError(t, err)
	_, err = c.AddSpecialtyToDoctor("M12345", "Pediatría", []string{"miércoles"})
	require.NoError(t, err)
	a, err := c.ScheduleAppointment("12345678", "M12345", "16/07/2025", "10:00", "Pediatría")
	require.NoError(t, err)

	out := run(t, c,
		"9", a.ID().String(),
		"10", a.ID().String(),
		"9", "not-an-id",
		"0",
	)

	assert.Equal(t, clinic.StatusCancelled, a.Status())
	assert.Contains(t, out, "Appointment updated:")
	assert.Equal(t, 2, strings.Count(out, "ERROR: "))
}

func TestEmptyRegistriesShortCircuit(t *testing.T) {
	out := run(t, clinic.New(), "4", "8", "0")

	assert.Contains(t, out, "No patients registered.")
	assert.Contains(t, out, "No doctors registered.")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestReadErrorIsReturned(t *testing.T) {
	var out bytes.Buffer
	m := New(clinic.New(), failingReader{}, &out)

	assert.EqualError(t, m.Run(), "broken pipe")
}

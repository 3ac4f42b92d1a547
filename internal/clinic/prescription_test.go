package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrescription(t *testing.T) {
	f := newAppointmentFixture(t)

	meds := []string{"Paracetamol 500mg", "Ibuprofeno 400mg"}
	rx, err := NewPrescription(f.patient, f.doctor, "15/07/2025", meds, "Tomar cada 8 horas")
	require.NoError(t, err)

	assert.Equal(t, "15/07/2025", FormatDate(rx.Date()))
	assert.Equal(t, meds, rx.Medications())
	assert.Equal(t, "Tomar cada 8 horas", rx.Instructions())
	assert.Same(t, f.patient, rx.Patient())
	assert.Same(t, f.doctor, rx.Doctor())

	out := rx.String()
	assert.Contains(t, out, "Paracetamol 500mg, Ibuprofeno 400mg")
	assert.Contains(t, out, "Dr. Juan García")
}

func TestNewPrescriptionInvalid(t *testing.T) {
	f := newAppointmentFixture(t)

	tests := []struct {
		name         string
		patient      *Patient
		doctor       *Doctor
		date         string
		meds         []string
		instructions string
	}{
		{"nil patient", nil, f.doctor, "15/07/2025", []string{"A"}, "x"},
		{"nil doctor", f.patient, nil, "15/07/2025", []string{"A"}, "x"},
		{"empty date", f.patient, f.doctor, "", []string{"A"}, "x"},
		{"bad date", f.patient, f.doctor, "2025/07/15", []string{"A"}, "x"},
		{"no medications", f.patient, f.doctor, "15/07/2025", nil, "x"},
		{"empty medication", f.patient, f.doctor, "15/07/2025", []string{"A", ""}, "x"},
		{"empty instructions", f.patient, f.doctor, "15/07/2025", []string{"A"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPrescription(tt.patient, tt.doctor, tt.date, tt.meds, tt.instructions)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestPrescriptionMedicationsAreCopied(t *testing.T) {
	f := newAppointmentFixture(t)

	meds := []string{"Paracetamol 500mg"}
	rx, err := NewPrescription(f.patient, f.doctor, "15/07/2025", meds, "Tomar con agua")
	require.NoError(t, err)

	meds[0] = "changed by caller"
	got := rx.Medications()
	got[0] = "changed by reader"

	assert.Equal(t, []string{"Paracetamol 500mg"}, rx.Medications())
}

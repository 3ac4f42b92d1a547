package clinic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPatient(t *testing.T) {
	p, err := NewPatient("Juan Cruz", "12345678", "03/02/1980")
	require.NoError(t, err)

	assert.Equal(t, "Juan Cruz", p.FullName())
	assert.Equal(t, "12345678", p.ID())
	assert.Equal(t, time.Date(1980, time.February, 3, 0, 0, 0, 0, time.UTC), p.BirthDate())
}

func TestNewPatientInvalid(t *testing.T) {
	tests := []struct {
		name, fullName, id, born string
	}{
		{"empty name", "", "12345678", "03/02/1980"},
		{"empty id", "Juan Cruz", "", "03/02/1980"},
		{"empty birth date", "Juan Cruz", "12345678", ""},
		{"iso birth date", "Juan Cruz", "12345678", "1980-02-03"},
		{"impossible day", "Juan Cruz", "12345678", "32/07/2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPatient(tt.fullName, tt.id, tt.born)
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	}
}

func TestNewPatientAcceptsFutureBirthDate(t *testing.T) {
	_, err := NewPatient("Nadie Aún", "1", "01/01/2999")
	assert.NoError(t, err)
}

func TestPatientString(t *testing.T) {
	p, err := NewPatient("Juan Cruz", "12345678", "03/02/1980")
	require.NoError(t, err)

	out := p.String()
	assert.Contains(t, out, "Juan Cruz")
	assert.Contains(t, out, "12345678")
	assert.Contains(t, out, "03/02/1980")
}

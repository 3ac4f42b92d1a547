package clinic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpecialty(t *testing.T, name string, days ...string) *Specialty {
	t.Helper()
	s, err := NewSpecialty(name, days)
	require.NoError(t, err)
	return s
}

func TestNewDoctorInvalid(t *testing.T) {
	_, err := NewDoctor("", "M12345")
	assert.ErrorIs(t, err, ErrInvalidData)

	_, err = NewDoctor("Dr. Juan García", " ")
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDoctorAddSpecialty(t *testing.T) {
	d, err := NewDoctor("Dr. Juan García", "M12345")
	require.NoError(t, err)

	ped := mustSpecialty(t, "Pediatría", "lunes", "miércoles", "viernes")
	displaced, err := d.AddSpecialty(ped)
	require.NoError(t, err)
	assert.Empty(t, displaced)

	got, ok := d.SpecialtyForDay(Monday)
	require.True(t, ok)
	assert.Same(t, ped, got)

	_, ok = d.SpecialtyForDay(Tuesday)
	assert.False(t, ok)
}

func TestDoctorAddSpecialtyReassignsSharedDays(t *testing.T) {
	d, err := NewDoctor("Dr. Juan García", "M12345")
	require.NoError(t, err)

	ped := mustSpecialty(t, "Pediatría", "lunes", "miércoles")
	card := mustSpecialty(t, "Cardiología", "miércoles", "jueves")

	_, err = d.AddSpecialty(ped)
	require.NoError(t, err)
	displaced, err := d.AddSpecialty(card)
	require.NoError(t, err)
	assert.Equal(t, []*Specialty{ped}, displaced)

	wed, _ := d.SpecialtyForDay(Wednesday)
	assert.Equal(t, "Cardiología", wed.Name())
	mon, _ := d.SpecialtyForDay(Monday)
	assert.Equal(t, "Pediatría", mon.Name())

	assert.Equal(t, []*Specialty{ped, card}, d.Specialties())
	assert.Equal(t, []string{"lunes: Pediatría", "miércoles: Cardiología", "jueves: Cardiología"}, d.Schedule())
}

func TestDoctorAddNilSpecialty(t *testing.T) {
	d, err := NewDoctor("Dr. Juan García", "M12345")
	require.NoError(t, err)

	_, err = d.AddSpecialty(nil)
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestDoctorAddSpecialtyWithoutDays(t *testing.T) {
	d, err := NewDoctor("Dr. Juan García", "M12345")
	require.NoError(t, err)

	_, err = d.AddSpecialty(&Specialty{name: "Pediatría"})
	assert.ErrorIs(t, err, ErrInvalidData)
	assert.Empty(t, d.Specialties())
}

func TestZeroDoctorAddSpecialty(t *testing.T) {
	d := &Doctor{}
	s := mustSpecialty(t, "Pediatría", "lunes")

	var err error
	require.NotPanics(t, func() { _, err = d.AddSpecialty(s) })
	require.NoError(t, err)

	got, ok := d.SpecialtyForDay(Monday)
	require.True(t, ok)
	assert.Same(t, s, got)
}

func TestDoctorString(t *testing.T) {
	d, err := NewDoctor("Dr. Juan García", "M12345")
	require.NoError(t, err)
	assert.Equal(t, "Doctor: Dr. Juan García (license: M12345)", d.String())

	_, err = d.AddSpecialty(mustSpecialty(t, "Pediatría", "viernes"))
	require.NoError(t, err)
	assert.Equal(t, "Doctor: Dr. Juan García (license: M12345) [viernes: Pediatría]", d.String())
}

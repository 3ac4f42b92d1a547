package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackgods/clinic-records/internal/api"
	"github.com/hackgods/clinic-records/internal/clinic"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	srv := httptest.NewServer(api.NewRouter(api.RouterConfig{Clinic: clinic.New()}))
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func TestClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.RegisterPatient(ctx, api.RegisterPatientRequest{FullName: "Juan Cruz", ID: "12345678", BirthDate: "03/02/1980"})
	require.NoError(t, err)
	_, err = c.RegisterDoctor(ctx, api.RegisterDoctorRequest{FullName: "Dr. Juan García", LicenseID: "M12345"})
	require.NoError(t, err)
	spec, err := c.AddSpecialty(ctx, "M12345", api.AddSpecialtyRequest{Name: "Pediatría", Days: []string{"miercoles"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"miércoles"}, spec.Days)

	appt, err := c.ScheduleAppointment(ctx, api.ScheduleAppointmentRequest{
		PatientID: "12345678", DoctorLicense: "M12345", Date: "16/07/2025", Time: "09:30", Specialty: "Pediatría",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, appt.ID)

	got, err := c.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, appt, got)

	done, err := c.CompleteAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)

	_, err = c.IssuePrescription(ctx, api.IssuePrescriptionRequest{
		PatientID: "12345678", DoctorLicense: "M12345", Date: "16/07/2025",
		Medications: []string{"Amoxicilina 500mg"}, Instructions: "Cada 12 horas",
	})
	require.NoError(t, err)

	hist, err := c.History(ctx, "12345678")
	require.NoError(t, err)
	assert.Len(t, hist.Appointments, 1)
	assert.Len(t, hist.Prescriptions, 1)

	patients, err := c.ListPatients(ctx)
	require.NoError(t, err)
	assert.Len(t, patients, 1)
	doctors, err := c.ListDoctors(ctx)
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
}

func TestClientReturnsAPIError(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.CancelAppointment(ctx, uuid.New())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "appointment_not_found", apiErr.Code)
	assert.False(t, apiErr.Conflict())
}

func TestClientConflict(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	_, err := c.RegisterPatient(ctx, api.RegisterPatientRequest{FullName: "Juan Cruz", ID: "1", BirthDate: "03/02/1980"})
	require.NoError(t, err)
	_, err = c.RegisterDoctor(ctx, api.RegisterDoctorRequest{FullName: "Dr. Juan García", LicenseID: "M1"})
	require.NoError(t, err)
	_, err = c.AddSpecialty(ctx, "M1", api.AddSpecialtyRequest{Name: "Clínica", Days: []string{"miércoles"}})
	require.NoError(t, err)

	req := api.ScheduleAppointmentRequest{PatientID: "1", DoctorLicense: "M1", Date: "16/07/2025", Time: "09:30", Specialty: "Clínica"}
	_, err = c.ScheduleAppointment(ctx, req)
	require.NoError(t, err)
	_, err = c.ScheduleAppointment(ctx, req)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.Conflict())
	assert.Equal(t, "slot_taken", apiErr.Code)
}

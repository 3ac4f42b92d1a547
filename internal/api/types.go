package api

import (
	"github.com/google/uuid"

	"github.com/hackgods/clinic-records/internal/clinic"
)

type RegisterPatientRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	ID        string `json:"id" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required"`
}

type RegisterDoctorRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	LicenseID string `json:"license_id" validate:"required"`
}

type AddSpecialtyRequest struct {
	Name string   `json:"name" validate:"required"`
	Days []string `json:"days" validate:"required,min=1,dive,required"`
}

type ScheduleAppointmentRequest struct {
	PatientID     string `json:"patient_id" validate:"required"`
	DoctorLicense string `json:"doctor_license" validate:"required"`
	Date          string `json:"date" validate:"required"`
	Time          string `json:"time" validate:"required"`
	Specialty     string `json:"specialty" validate:"required"`
}

type IssuePrescriptionRequest struct {
	PatientID     string   `json:"patient_id" validate:"required"`
	DoctorLicense string   `json:"doctor_license" validate:"required"`
	Date          string   `json:"date" validate:"required"`
	Medications   []string `json:"medications" validate:"required,min=1,dive,required"`
	Instructions  string   `json:"instructions" validate:"required"`
}

type PatientResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	BirthDate string `json:"birth_date"`
}

type DaySpecialty struct {
	Day       string `json:"day"`
	Specialty string `json:"specialty"`
}

type DoctorResponse struct {
	LicenseID string         `json:"license_id"`
	FullName  string         `json:"full_name"`
	Schedule  []DaySpecialty `json:"schedule"`
}

type SpecialtyResponse struct {
	Name string   `json:"name"`
	Days []string `json:"days"`
}

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	PatientID     string    `json:"patient_id"`
	DoctorLicense string    `json:"doctor_license"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Weekday       string    `json:"weekday"`
	Specialty     string    `json:"specialty"`
	Status        string    `json:"status"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID `json:"id"`
	PatientID     string    `json:"patient_id"`
	DoctorLicense string    `json:"doctor_license"`
	Date          string    `json:"date"`
	Medications   []string  `json:"medications"`
	Instructions  string    `json:"instructions"`
}

type HistoryResponse struct {
	Patient       PatientResponse        `json:"patient"`
	Appointments  []AppointmentResponse  `json:"appointments"`
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func toPatientResponse(p *clinic.Patient) PatientResponse {
	return PatientResponse{
		ID:        p.ID(),
		FullName:  p.FullName(),
		BirthDate: clinic.FormatDate(p.BirthDate()),
	}
}

func toDoctorResponse(d *clinic.Doctor) DoctorResponse {
	schedule := []DaySpecialty{}
	for _, day := range clinic.AllWeekdays {
		if s, ok := d.SpecialtyForDay(day); ok {
			schedule = append(schedule, DaySpecialty{Day: day.String(), Specialty: s.Name()})
		}
	}
	return DoctorResponse{
		LicenseID: d.LicenseID(),
		FullName:  d.FullName(),
		Schedule:  schedule,
	}
}

func toSpecialtyResponse(s *clinic.Specialty) SpecialtyResponse {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return SpecialtyResponse{Name: s.Name(), Days: names}
}

func toAppointmentResponse(a *clinic.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID(),
		PatientID:     a.Patient().ID(),
		DoctorLicense: a.Doctor().LicenseID(),
		Date:          clinic.FormatDate(a.Date()),
		Time:          a.Time().String(),
		Weekday:       a.Weekday().String(),
		Specialty:     a.Specialty(),
		Status:        string(a.Status()),
	}
}

func toPrescriptionResponse(p *clinic.Prescription) PrescriptionResponse {
	return PrescriptionResponse{
		ID:            p.ID(),
		PatientID:     p.Patient().ID(),
		DoctorLicense: p.Doctor().LicenseID(),
		Date:          clinic.FormatDate(p.Date()),
		Medications:   p.Medications(),
		Instructions:  p.Instructions(),
	}
}

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hackgods/clinic-records/internal/clinic"
)

// ErrorObserver is told the code of every rejected request.
type ErrorObserver interface {
	ObserveDomainError(code string)
}

type handlers struct {
	clinic   *clinic.Clinic
	validate *validator.Validate
	errors   ErrorObserver
	log      *zap.Logger
}

// decode reads and validates a JSON body, writing the 400 response itself
// when it returns false.
func (h *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.reject(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.reject(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}

func (h *handlers) reject(w http.ResponseWriter, status int, code, details string) {
	if h.errors != nil {
		h.errors.ObserveDomainError(code)
	}
	writeError(w, status, code, details)
}

func (h *handlers) registerPatient(w http.ResponseWriter, r *http.Request) {
	var req RegisterPatientRequest
	if !h.decode(w, r, &req) {
		return
	}

	p, err := h.clinic.RegisterPatient(req.FullName, req.ID, req.BirthDate)
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPatientResponse(p))
}

func (h *handlers) listPatients(w http.ResponseWriter, r *http.Request) {
	patients := h.clinic.ListPatients()
	resp := make([]PatientResponse, 0, len(patients))
	for _, p := range patients {
		resp = append(resp, toPatientResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) getPatient(w http.ResponseWriter, r *http.Request) {
	p, err := h.clinic.FindPatient(chi.URLParam(r, "id"))
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPatientResponse(p))
}

func (h *handlers) getHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := h.clinic.ClinicalHistory(chi.URLParam(r, "id"))
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}

	appts := hist.Appointments()
	rxs := hist.Prescriptions()
	resp := HistoryResponse{
		Patient:       toPatientResponse(hist.Patient()),
		Appointments:  make([]AppointmentResponse, 0, len(appts)),
		Prescriptions: make([]PrescriptionResponse, 0, len(rxs)),
	}
	for _, a := range appts {
		resp.Appointments = append(resp.Appointments, toAppointmentResponse(a))
	}
	for _, rx := range rxs {
		resp.Prescriptions = append(resp.Prescriptions, toPrescriptionResponse(rx))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) registerDoctor(w http.ResponseWriter, r *http.Request) {
	var req RegisterDoctorRequest
	if !h.decode(w, r, &req) {
		return
	}

	d, err := h.clinic.RegisterDoctor(req.FullName, req.LicenseID)
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDoctorResponse(d))
}

func (h *handlers) listDoctors(w http.ResponseWriter, r *http.Request) {
	doctors := h.clinic.ListDoctors()
	resp := make([]DoctorResponse, 0, len(doctors))
	for _, d := range doctors {
		resp = append(resp, toDoctorResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) getDoctor(w http.ResponseWriter, r *http.Request) {
	d, err := h.clinic.FindDoctor(chi.URLParam(r, "license"))
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDoctorResponse(d))
}

func (h *handlers) addSpecialty(w http.ResponseWriter, r *http.Request) {
	var req AddSpecialtyRequest
	if !h.decode(w, r, &req) {
		return
	}

	s, err := h.clinic.AddSpecialtyToDoctor(chi.URLParam(r, "license"), req.Name, req.Days)
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSpecialtyResponse(s))
}

func (h *handlers) scheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req ScheduleAppointmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	a, err := h.clinic.ScheduleAppointment(req.PatientID, req.DoctorLicense, req.Date, req.Time, req.Specialty)
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
}

func (h *handlers) getAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	a, err := h.clinic.FindAppointment(id)
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentResponse(a))
}

func (h *handlers) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.clinic.CancelAppointment)
}

func (h *handlers) completeAppointment(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.clinic.CompleteAppointment)
}

func (h *handlers) changeStatus(w http.ResponseWriter, r *http.Request, change func(uuid.UUID) (*clinic.Appointment, error)) {
	id, ok := h.appointmentID(w, r)
	if !ok {
		return
	}

	a, err := change(id)
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAppointmentResponse(a))
}

func (h *handlers) appointmentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.reject(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *handlers) issuePrescription(w http.ResponseWriter, r *http.Request) {
	var req IssuePrescriptionRequest
	if !h.decode(w, r, &req) {
		return
	}

	rx, err := h.clinic.IssuePrescription(req.PatientID, req.DoctorLicense, req.Date, req.Medications, req.Instructions)
	if err != nil {
		h.handleClinicError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPrescriptionResponse(rx))
}

func (h *handlers) handleClinicError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, clinic.ErrInvalidData):
		h.reject(w, http.StatusBadRequest, "invalid_data", err.Error())
	case errors.Is(err, clinic.ErrPatientNotFound):
		h.reject(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, clinic.ErrDoctorNotFound):
		h.reject(w, http.StatusNotFound, "doctor_not_found", err.Error())
	case errors.Is(err, clinic.ErrAppointmentNotFound):
		h.reject(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, clinic.ErrDoctorUnavailable):
		h.reject(w, http.StatusUnprocessableEntity, "doctor_unavailable", err.Error())
	case errors.Is(err, clinic.ErrInvalidSpecialty):
		h.reject(w, http.StatusUnprocessableEntity, "invalid_specialty", err.Error())
	case errors.Is(err, clinic.ErrSlotTaken):
		h.reject(w, http.StatusConflict, "slot_taken", err.Error())
	case errors.Is(err, clinic.ErrInvalidStatusTransition):
		h.reject(w, http.StatusConflict, "invalid_status_transition", err.Error())
	default:
		h.log.Error("unexpected clinic error",
			zap.String("request_id", GetRequestID(r.Context())),
			zap.Error(err))
		h.reject(w, http.StatusInternalServerError, "internal_error", "unexpected error")
	}
}

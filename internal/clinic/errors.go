package clinic

import "errors"

// ErrClinic is the root of every error the clinic core returns. Callers can
// match it to handle any domain failure, or match the specific kinds below.
var ErrClinic = errors.New("clinic")

type kindError struct {
	msg string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return ErrClinic }

var (
	ErrInvalidData             error = &kindError{"invalid data"}
	ErrPatientNotFound         error = &kindError{"patient not found"}
	ErrDoctorNotFound          error = &kindError{"doctor not found"}
	ErrDoctorUnavailable       error = &kindError{"doctor unavailable"}
	ErrInvalidSpecialty        error = &kindError{"invalid specialty"}
	ErrSlotTaken               error = &kindError{"slot already taken"}
	ErrAppointmentNotFound     error = &kindError{"appointment not found"}
	ErrInvalidStatusTransition error = &kindError{"invalid status transition"}
)

package appointment

import "errors"

// Sentinel errors returned by the service. Handlers map these onto the HTTP
// error taxonomy (400/403/404/409).
var (
	ErrNotFound           = errors.New("appointment not found")
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrPatientNotFound    = errors.New("patient not found")
	ErrForbidden          = errors.New("not authorized for this appointment")
	ErrPastDate           = errors.New("appointment date and time must be in the future")
	ErrSlotUnavailable    = errors.New("requested time does not fall inside the doctor's availability")
	ErrSlotTaken          = errors.New("doctor already has an appointment at this time")
	ErrInvalidTransition  = errors.New("invalid appointment status transition")
	ErrPrescriptionExists = errors.New("appointment already has a prescription")
)

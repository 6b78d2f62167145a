package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"healthcare-coordination-server/internal/appointment"
	"healthcare-coordination-server/internal/utils"
)

// respondAppointmentError maps the appointment service's sentinel errors onto
// the HTTP error taxonomy.
func respondAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appointment.ErrNotFound):
		utils.NotFound(c, "Appointment not found")
	case errors.Is(err, appointment.ErrDoctorNotFound):
		utils.NotFound(c, "Doctor not found or user is not a doctor")
	case errors.Is(err, appointment.ErrPatientNotFound):
		utils.NotFound(c, "Patient not found or user is not a patient")
	case errors.Is(err, appointment.ErrForbidden):
		utils.Forbidden(c, "You are not authorized for this appointment")
	case errors.Is(err, appointment.ErrPastDate),
		errors.Is(err, appointment.ErrSlotUnavailable):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, appointment.ErrSlotTaken),
		errors.Is(err, appointment.ErrPrescriptionExists),
		errors.Is(err, appointment.ErrInvalidTransition):
		utils.Conflict(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

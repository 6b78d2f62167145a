package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"healthcare-coordination-server/internal/appointment"
	"healthcare-coordination-server/internal/middleware"
	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/storage"
	"healthcare-coordination-server/internal/utils"
)

// AppointmentHandler handles the clinical side of the appointment lifecycle:
// the doctor's dashboard, diagnosis, prescription, medical record, diagnostic
// report uploads, decisions and completion, plus the party listings.
type AppointmentHandler struct {
	Service *appointment.Service
	Store   *storage.DiskStore
	Log     zerolog.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *appointment.Service, store *storage.DiskStore, log zerolog.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Store: store, Log: log}
}

// GetDashboard returns the appointment joined with patient, doctor,
// prescription and medical record. Assigned doctor only.
func (h *AppointmentHandler) GetDashboard(c *gin.Context) {
	actorID, _ := middleware.GetUserIDFromContext(c)

	appt, err := h.Service.Dashboard(c.Request.Context(), c.Param("appointmentId"), actorID)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointment dashboard fetched successfully", appt)
}

// UpdateDiagnosisRequest carries the clinical summary fields. SuggestedTests
// is a full replace: an empty list clears the field.
type UpdateDiagnosisRequest struct {
	Diagnosis      string   `json:"diagnosis"`
	Notes          string   `json:"notes"`
	SuggestedTests []string `json:"suggestedTests"`
}

// UpdateDiagnosis overwrites the appointment's diagnosis, notes and suggested
// tests.
func (h *AppointmentHandler) UpdateDiagnosis(c *gin.Context) {
	var req UpdateDiagnosisRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	appt, err := h.Service.UpdateDiagnosis(c.Request.Context(), c.Param("appointmentId"), actorID, appointment.DiagnosisParams{
		Diagnosis:      req.Diagnosis,
		Notes:          req.Notes,
		SuggestedTests: req.SuggestedTests,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Diagnosis updated successfully", appt)
}

// MedicationRequest is one prescription line item.
type MedicationRequest struct {
	Name         string `json:"name" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// AddPrescriptionRequest represents the body for issuing a prescription.
type AddPrescriptionRequest struct {
	Medications []MedicationRequest `json:"medications" binding:"required,min=1,dive"`
	Notes       string              `json:"notes"`
}

// AddPrescription issues a prescription against the appointment and links it.
func (h *AppointmentHandler) AddPrescription(c *gin.Context) {
	var req AddPrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	params := appointment.PrescriptionParams{Notes: req.Notes}
	for _, m := range req.Medications {
		params.Medications = append(params.Medications, appointment.MedicationParams{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
			Instructions: m.Instructions,
		})
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	prescription, err := h.Service.AddPrescription(c.Request.Context(), c.Param("appointmentId"), actorID, params)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Created(c, "Prescription added successfully", prescription)
}

// UpsertMedicalRecordRequest represents the body for documenting a visit.
type UpsertMedicalRecordRequest struct {
	Diagnosis string `json:"diagnosis"`
	Notes     string `json:"notes"`
}

// UpsertMedicalRecord creates or updates the medical record linked to the
// appointment.
func (h *AppointmentHandler) UpsertMedicalRecord(c *gin.Context) {
	var req UpsertMedicalRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	record, err := h.Service.UpsertMedicalRecord(c.Request.Context(), c.Param("appointmentId"), actorID, appointment.RecordParams{
		Diagnosis: req.Diagnosis,
		Notes:     req.Notes,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Medical record saved successfully", record)
}

// AddDiagnosticReport accepts a multipart upload and appends a named,
// timestamped file reference to the appointment. The stored file is removed
// again on every failure path after acceptance.
func (h *AppointmentHandler) AddDiagnosticReport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "A report file is required: "+err.Error())
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	stored, err := h.Store.Save(file, header)
	if err != nil {
		utils.InternalServerError(c, "Failed to store report file: "+err.Error())
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	report, err := h.Service.AddDiagnosticReport(c.Request.Context(), c.Param("appointmentId"), actorID, name, stored.URL)
	if err != nil {
		// Compensating action: don't leave an orphaned file behind.
		if rmErr := h.Store.Remove(stored); rmErr != nil {
			h.Log.Warn().Err(rmErr).Str("path", stored.Path).
				Msg("failed to remove orphaned diagnostic report file")
		}
		respondAppointmentError(c, err)
		return
	}

	utils.Created(c, "Diagnostic report added successfully", report)
}

// DecideRequest carries the doctor's decision on a pending appointment.
type DecideRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=approved rejected"`
}

// Decide approves or rejects a pending appointment.
func (h *AppointmentHandler) Decide(c *gin.Context) {
	var req DecideRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	appt, err := h.Service.Decide(c.Request.Context(), c.Param("appointmentId"), actorID, req.Status)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointment status updated successfully", appt)
}

// Complete marks the appointment completed. Idempotent.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	actorID, _ := middleware.GetUserIDFromContext(c)
	appt, err := h.Service.Complete(c.Request.Context(), c.Param("appointmentId"), actorID)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointment completed successfully", appt)
}

// ListForDoctor lists all appointments for a doctor with patient identity.
func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	appts, err := h.Service.ListForDoctor(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// ListForPatient lists a patient's appointments, date descending, optionally
// filtered to completed ones. Patients may only list their own.
func (h *AppointmentHandler) ListForPatient(c *gin.Context) {
	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	completedOnly := c.Query("completed") == "true"

	appts, err := h.Service.ListForPatient(c.Request.Context(), c.Param("patientId"), actorID, actorRole, completedOnly)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

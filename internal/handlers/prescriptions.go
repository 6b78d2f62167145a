package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-coordination-server/internal/middleware"
	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/utils"
)

// PrescriptionHandler handles prescription reads for patients, doctors and
// pharmacists. Prescriptions are created through the appointment workflow.
type PrescriptionHandler struct {
	DB *gorm.DB
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db}
}

// GetPrescriptionByID fetches one prescription. Allowed for its patient, its
// doctor, and admins.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	var prescription models.Prescription
	err := h.DB.Preload("Medications").First(&prescription, "id = ?", c.Param("id")).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Prescription not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if actorID != prescription.PatientID && actorID != prescription.DoctorID && actorRole != models.RoleAdmin {
		utils.Forbidden(c, "Not authorized to view this prescription")
		return
	}

	utils.Success(c, "Prescription fetched successfully", prescription)
}

// GetPatientPrescriptions lists a patient's prescriptions, newest first.
// Patients may only list their own.
func (h *PrescriptionHandler) GetPatientPrescriptions(c *gin.Context) {
	patientID := c.Param("patientId")

	actorID, _ := middleware.GetUserIDFromContext(c)
	if actorID != patientID {
		utils.Forbidden(c, "Not authorized to view these prescriptions")
		return
	}

	var prescriptions []models.Prescription
	err := h.DB.Preload("Medications").Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&prescriptions).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetAllPrescriptions lists every prescription for the pharmacist view.
// Role-gated at the route layer.
func (h *PrescriptionHandler) GetAllPrescriptions(c *gin.Context) {
	var prescriptions []models.Prescription
	err := h.DB.Preload("Medications").Preload("Patient").Preload("Doctor").
		Order("created_at desc").
		Find(&prescriptions).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}
	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// SearchPrescriptions finds prescriptions by patient name, case-insensitive.
// Role-gated at the route layer.
func (h *PrescriptionHandler) SearchPrescriptions(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		utils.BadRequest(c, "query parameter is required")
		return
	}

	var prescriptions []models.Prescription
	err := h.DB.Preload("Medications").Preload("Patient").Preload("Doctor").
		Joins("JOIN users ON users.id = prescriptions.patient_id").
		Where("LOWER(users.name) LIKE LOWER(?)", "%"+query+"%").
		Order("prescriptions.created_at desc").
		Find(&prescriptions).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to search prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

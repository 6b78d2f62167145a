package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-coordination-server/internal/appointment"
	"healthcare-coordination-server/internal/middleware"
	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/scheduling"
	"healthcare-coordination-server/internal/utils"
)

// defaultSlotWindowDays is how far ahead available slots are expanded when
// the client does not ask for a specific window.
const defaultSlotWindowDays = 28

// DoctorHandler handles the doctor-facing surface: weekly availability
// management and the doctor's own appointment bookkeeping.
type DoctorHandler struct {
	DB      *gorm.DB
	Service *appointment.Service
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, svc *appointment.Service) *DoctorHandler {
	return &DoctorHandler{DB: db, Service: svc}
}

// loadProfileForDoctor fetches the doctor profile for a doctor user ID,
// after checking the actor owns it or is an admin. Returns nil after writing
// the error response.
func (h *DoctorHandler) loadProfileForDoctor(c *gin.Context, doctorUserID string, enforceOwner bool) *models.DoctorProfile {
	if enforceOwner && !requireProfileOwner(c, doctorUserID) {
		return nil
	}
	var profile models.DoctorProfile
	err := h.DB.Preload("WeeklySlots", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("user_id = ?", doctorUserID).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil
	}
	return &profile
}

// AvailableSlotsResponse carries both the raw weekly templates and their
// server-side expansion into bookable instants.
type AvailableSlotsResponse struct {
	WeeklyRecurringSlots []models.WeeklySlot       `json:"weeklyRecurringSlots"`
	BookableSlots        []scheduling.ConcreteSlot `json:"bookableSlots"`
}

// GetAvailableSlots returns a doctor's weekly recurring slots and the
// concrete bookable instants expanded over the coming window. Any
// authenticated user may read them.
func (h *DoctorHandler) GetAvailableSlots(c *gin.Context) {
	profile := h.loadProfileForDoctor(c, c.Param("doctorId"), false)
	if profile == nil {
		return
	}

	windowDays := defaultSlotWindowDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.BadRequest(c, "days must be a positive integer")
			return
		}
		windowDays = parsed
	}

	utils.Success(c, "Available slots fetched successfully", AvailableSlotsResponse{
		WeeklyRecurringSlots: profile.WeeklySlots,
		BookableSlots:        scheduling.ExpandWeeklySlots(profile.WeeklySlots, time.Now(), windowDays),
	})
}

// WeeklySlotRequest represents one weekly recurring slot template.
type WeeklySlotRequest struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

func (r *WeeklySlotRequest) validate(c *gin.Context) bool {
	if !scheduling.ValidWeekday(r.Day) {
		utils.BadRequest(c, "day must be a weekday name, e.g. Monday")
		return false
	}
	if !scheduling.ValidClock(r.StartTime) || !scheduling.ValidClock(r.EndTime) {
		utils.BadRequest(c, "startTime and endTime must be HH:MM")
		return false
	}
	return true
}

// AddWeeklySlot appends one weekly recurring slot to the doctor's set.
func (h *DoctorHandler) AddWeeklySlot(c *gin.Context) {
	var req WeeklySlotRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !req.validate(c) {
		return
	}

	profile := h.loadProfileForDoctor(c, c.Param("doctorId"), true)
	if profile == nil {
		return
	}

	slot := models.WeeklySlot{
		DoctorProfileID: profile.ID,
		Day:             req.Day,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
	}
	if err := h.DB.Create(&slot).Error; err != nil {
		utils.InternalServerError(c, "Failed to add weekly slot: "+err.Error())
		return
	}

	profile.WeeklySlots = append(profile.WeeklySlots, slot)
	utils.Success(c, "Weekly recurring slot added successfully", profile)
}

// UpdateAvailableSlotsRequest replaces the entire weekly slot set.
type UpdateAvailableSlotsRequest struct {
	WeeklyRecurringSlots []WeeklySlotRequest `json:"weeklyRecurringSlots" binding:"required"`
}

// UpdateAvailableSlots replaces the doctor's weekly recurring slots wholesale.
func (h *DoctorHandler) UpdateAvailableSlots(c *gin.Context) {
	var req UpdateAvailableSlotsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	for i := range req.WeeklyRecurringSlots {
		if !req.WeeklyRecurringSlots[i].validate(c) {
			return
		}
	}

	profile := h.loadProfileForDoctor(c, c.Param("doctorId"), true)
	if profile == nil {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_profile_id = ?", profile.ID).Delete(&models.WeeklySlot{}).Error; err != nil {
			return err
		}
		for _, s := range req.WeeklyRecurringSlots {
			slot := models.WeeklySlot{
				DoctorProfileID: profile.ID,
				Day:             s.Day,
				StartTime:       s.StartTime,
				EndTime:         s.EndTime,
			}
			if err := tx.Create(&slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update available slots: "+err.Error())
		return
	}

	updated := h.loadProfileForDoctor(c, c.Param("doctorId"), false)
	if updated == nil {
		return
	}
	utils.Success(c, "Available slots updated successfully", updated)
}

// DeleteWeeklySlot removes one weekly recurring slot by its ID.
func (h *DoctorHandler) DeleteWeeklySlot(c *gin.Context) {
	profile := h.loadProfileForDoctor(c, c.Param("doctorId"), true)
	if profile == nil {
		return
	}

	res := h.DB.Where("id = ? AND doctor_profile_id = ?", c.Param("slotId"), profile.ID).
		Delete(&models.WeeklySlot{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete weekly slot: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Weekly recurring slot not found")
		return
	}

	utils.Success(c, "Weekly recurring slot deleted successfully", nil)
}

// CreateAppointmentRequest represents the request body for booking an
// appointment.
type CreateAppointmentRequest struct {
	DoctorID  string    `json:"doctorId" binding:"required,uuid"`
	PatientID string    `json:"patientId" binding:"required,uuid"`
	Date      time.Time `json:"date" binding:"required"`
	Reason    string    `json:"reason"`
}

// CreateAppointment books a new appointment in status pending. Patients may
// only book for themselves.
func (h *DoctorHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if actorRole == models.RolePatient && actorID != req.PatientID {
		utils.Forbidden(c, "Patients can only book appointments for themselves")
		return
	}

	appt, err := h.Service.Create(c.Request.Context(), appointment.CreateParams{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date,
		Reason:    req.Reason,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appt)
}

// EditAppointmentRequest is a partial patch of an appointment's booking
// fields.
type EditAppointmentRequest struct {
	Date   *time.Time `json:"date"`
	Reason *string    `json:"reason"`
}

// EditAppointment applies a partial patch to an appointment.
func (h *DoctorHandler) EditAppointment(c *gin.Context) {
	var req EditAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	appt, err := h.Service.Edit(c.Request.Context(), c.Param("appointmentId"), actorID, actorRole, appointment.EditParams{
		Date:   req.Date,
		Reason: req.Reason,
	})
	if err != nil {
		respondAppointmentError(c, err)
		return
	}

	utils.Success(c, "Appointment updated successfully", appt)
}

// DeleteAppointment removes an appointment.
func (h *DoctorHandler) DeleteAppointment(c *gin.Context) {
	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	if err := h.Service.Delete(c.Request.Context(), c.Param("appointmentId"), actorID, actorRole); err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}

// GetAppointmentByID fetches one appointment with identity fields.
func (h *DoctorHandler) GetAppointmentByID(c *gin.Context) {
	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)

	appt, err := h.Service.Get(c.Request.Context(), c.Param("appointmentId"), actorID, actorRole)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointment fetched successfully", appt)
}

// GetAppointmentsByDoctor lists all appointments for a doctor.
func (h *DoctorHandler) GetAppointmentsByDoctor(c *gin.Context) {
	appts, err := h.Service.ListForDoctor(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appts)
}

// GetPastConsultations lists a doctor's completed appointments, most recent
// first.
func (h *DoctorHandler) GetPastConsultations(c *gin.Context) {
	appts, err := h.Service.PastConsultations(c.Request.Context(), c.Param("doctorId"))
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	utils.Success(c, "Past consultations fetched successfully", appts)
}

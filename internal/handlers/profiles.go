package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-coordination-server/internal/middleware"
	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/utils"
)

// ProfileHandler handles the role profile requests (doctor, patient,
// pharmacist).
type ProfileHandler struct {
	DB *gorm.DB
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{DB: db}
}

// requireProfileOwner checks that the acting user is the profile's owner or
// an admin. Returns false after writing the error response.
func requireProfileOwner(c *gin.Context, ownerUserID string) bool {
	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if actorRole != models.RoleAdmin && actorID != ownerUserID {
		utils.Forbidden(c, "You are not authorized to manage this profile")
		return false
	}
	return true
}

// verifyUserRole loads the user and checks it carries the expected role.
// Returns nil after writing the error response.
func (h *ProfileHandler) verifyUserRole(c *gin.Context, userID string, role models.Role) *models.User {
	var user models.User
	if err := h.DB.Where("id = ? AND role = ?", userID, role).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found or does not have the "+string(role)+" role")
		} else {
			utils.InternalServerError(c, "Database error verifying user: "+err.Error())
		}
		return nil
	}
	return &user
}

// --- Doctor profiles ---

// DoctorProfileRequest represents the body for creating or updating a doctor
// profile.
type DoctorProfileRequest struct {
	UserID          string   `json:"userId" binding:"required,uuid"`
	Specialization  string   `json:"specialization"`
	Qualifications  []string `json:"qualifications"`
	ExperienceYears int      `json:"experienceYears"`
	Phone           string   `json:"phone"`
	Gender          string   `json:"gender"`
	Bio             string   `json:"bio"`
}

// CreateDoctorProfile handles creating the doctor profile for a user.
func (h *ProfileHandler) CreateDoctorProfile(c *gin.Context) {
	var req DoctorProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !requireProfileOwner(c, req.UserID) {
		return
	}
	if h.verifyUserRole(c, req.UserID, models.RoleDoctor) == nil {
		return
	}

	var existing models.DoctorProfile
	if err := h.DB.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Doctor profile already exists for this user")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	profile := models.DoctorProfile{
		UserID:          req.UserID,
		Specialization:  req.Specialization,
		Qualifications:  req.Qualifications,
		ExperienceYears: req.ExperienceYears,
		Phone:           req.Phone,
		Gender:          req.Gender,
		Bio:             req.Bio,
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor profile: "+err.Error())
		return
	}

	utils.Created(c, "Doctor profile created successfully", profile)
}

// GetDoctorProfile handles fetching a doctor profile by the owning user's ID.
func (h *ProfileHandler) GetDoctorProfile(c *gin.Context) {
	var profile models.DoctorProfile
	err := h.DB.Preload("WeeklySlots", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc")
	}).Where("user_id = ?", c.Param("id")).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Doctor profile fetched successfully", profile)
}

// GetDoctorProfiles handles listing all doctor profiles, used by patients to
// pick a doctor to book.
func (h *ProfileHandler) GetDoctorProfiles(c *gin.Context) {
	var profiles []models.DoctorProfile
	if err := h.DB.Preload("User").Find(&profiles).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctor profiles: "+err.Error())
		return
	}
	utils.Success(c, "Doctor profiles fetched successfully", profiles)
}

// UpdateDoctorProfile handles updating a doctor profile by the owning user's
// ID.
func (h *ProfileHandler) UpdateDoctorProfile(c *gin.Context) {
	userID := c.Param("id")
	if !requireProfileOwner(c, userID) {
		return
	}

	var req DoctorProfileRequest
	req.UserID = userID
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var profile models.DoctorProfile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	profile.Specialization = req.Specialization
	profile.Qualifications = req.Qualifications
	profile.ExperienceYears = req.ExperienceYears
	profile.Phone = req.Phone
	profile.Gender = req.Gender
	profile.Bio = req.Bio

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor profile: "+err.Error())
		return
	}
	utils.Success(c, "Doctor profile updated successfully", profile)
}

// --- Patient profiles ---

// PatientProfileRequest represents the body for creating or updating a
// patient profile. Emergency contact fields are required together.
type PatientProfileRequest struct {
	UserID                   string   `json:"userId" binding:"required,uuid"`
	Age                      int      `json:"age"`
	Gender                   string   `json:"gender"`
	Phone                    string   `json:"phone"`
	Address                  string   `json:"address"`
	BloodGroup               string   `json:"bloodGroup"`
	Allergies                []string `json:"allergies"`
	EmergencyContactName     string   `json:"emergencyContactName" binding:"required"`
	EmergencyContactPhone    string   `json:"emergencyContactPhone" binding:"required"`
	EmergencyContactRelation string   `json:"emergencyContactRelation" binding:"required"`
}

// CreatePatientProfile handles creating the patient profile for a user.
func (h *ProfileHandler) CreatePatientProfile(c *gin.Context) {
	var req PatientProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !requireProfileOwner(c, req.UserID) {
		return
	}
	if h.verifyUserRole(c, req.UserID, models.RolePatient) == nil {
		return
	}

	var existing models.PatientProfile
	if err := h.DB.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Patient profile already exists for this user")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	profile := models.PatientProfile{
		UserID:                   req.UserID,
		Age:                      req.Age,
		Gender:                   req.Gender,
		Phone:                    req.Phone,
		Address:                  req.Address,
		BloodGroup:               req.BloodGroup,
		Allergies:                req.Allergies,
		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactRelation: req.EmergencyContactRelation,
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient profile: "+err.Error())
		return
	}
	utils.Created(c, "Patient profile created successfully", profile)
}

// GetPatientProfile handles fetching a patient profile by the owning user's
// ID. Accessible by the patient themselves, doctors, and admins.
func (h *ProfileHandler) GetPatientProfile(c *gin.Context) {
	userID := c.Param("id")

	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if actorRole != models.RoleAdmin && actorRole != models.RoleDoctor && actorID != userID {
		utils.Forbidden(c, "You are not authorized to view this profile")
		return
	}

	var profile models.PatientProfile
	err := h.DB.Preload("Files").Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Patient profile fetched successfully", profile)
}

// UpdatePatientProfile handles updating a patient profile by the owning
// user's ID.
func (h *ProfileHandler) UpdatePatientProfile(c *gin.Context) {
	userID := c.Param("id")
	if !requireProfileOwner(c, userID) {
		return
	}

	var req PatientProfileRequest
	req.UserID = userID
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var profile models.PatientProfile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	profile.Age = req.Age
	profile.Gender = req.Gender
	profile.Phone = req.Phone
	profile.Address = req.Address
	profile.BloodGroup = req.BloodGroup
	profile.Allergies = req.Allergies
	if req.EmergencyContactName != "" {
		profile.EmergencyContactName = req.EmergencyContactName
		profile.EmergencyContactPhone = req.EmergencyContactPhone
		profile.EmergencyContactRelation = req.EmergencyContactRelation
	}

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient profile: "+err.Error())
		return
	}
	utils.Success(c, "Patient profile updated successfully", profile)
}

// --- Pharmacist profiles ---

// PharmacistProfileRequest represents the body for creating or updating a
// pharmacist profile.
type PharmacistProfileRequest struct {
	UserID        string `json:"userId" binding:"required,uuid"`
	Phone         string `json:"phone"`
	PharmacyName  string `json:"pharmacyName"`
	LicenseNumber string `json:"licenseNumber"`
}

// CreatePharmacistProfile handles creating the pharmacist profile for a user.
func (h *ProfileHandler) CreatePharmacistProfile(c *gin.Context) {
	var req PharmacistProfileRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !requireProfileOwner(c, req.UserID) {
		return
	}
	if h.verifyUserRole(c, req.UserID, models.RolePharmacist) == nil {
		return
	}

	var existing models.PharmacistProfile
	if err := h.DB.Where("user_id = ?", req.UserID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "Pharmacist profile already exists for this user")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	profile := models.PharmacistProfile{
		UserID:        req.UserID,
		Phone:         req.Phone,
		PharmacyName:  req.PharmacyName,
		LicenseNumber: req.LicenseNumber,
	}
	if err := h.DB.Create(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to create pharmacist profile: "+err.Error())
		return
	}
	utils.Created(c, "Pharmacist profile created successfully", profile)
}

// GetPharmacistProfile handles fetching a pharmacist profile by the owning
// user's ID.
func (h *ProfileHandler) GetPharmacistProfile(c *gin.Context) {
	var profile models.PharmacistProfile
	err := h.DB.Where("user_id = ?", c.Param("id")).First(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pharmacist profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Pharmacist profile fetched successfully", profile)
}

// UpdatePharmacistProfile handles updating a pharmacist profile by the owning
// user's ID.
func (h *ProfileHandler) UpdatePharmacistProfile(c *gin.Context) {
	userID := c.Param("id")
	if !requireProfileOwner(c, userID) {
		return
	}

	var req PharmacistProfileRequest
	req.UserID = userID
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var profile models.PharmacistProfile
	if err := h.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Pharmacist profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	profile.Phone = req.Phone
	profile.PharmacyName = req.PharmacyName
	profile.LicenseNumber = req.LicenseNumber

	if err := h.DB.Save(&profile).Error; err != nil {
		utils.InternalServerError(c, "Failed to update pharmacist profile: "+err.Error())
		return
	}
	utils.Success(c, "Pharmacist profile updated successfully", profile)
}

// --- Tagged union ---

// ProfileEnvelope is the tagged union of the three profile kinds, resolved
// once from the user's role instead of via role-interpolated routes.
type ProfileEnvelope struct {
	Kind    models.Role `json:"kind"`
	Profile interface{} `json:"profile"`
}

// GetProfileForUser resolves which profile kind a user has from their role
// and returns it wrapped in a ProfileEnvelope.
func (h *ProfileHandler) GetProfileForUser(c *gin.Context) {
	userID := c.Param("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var profile interface{}
	var err error
	switch user.Role {
	case models.RoleDoctor:
		var p models.DoctorProfile
		err = h.DB.Preload("WeeklySlots").Where("user_id = ?", userID).First(&p).Error
		profile = p
	case models.RolePatient:
		var p models.PatientProfile
		err = h.DB.Preload("Files").Where("user_id = ?", userID).First(&p).Error
		profile = p
	case models.RolePharmacist:
		var p models.PharmacistProfile
		err = h.DB.Where("user_id = ?", userID).First(&p).Error
		profile = p
	default:
		utils.NotFound(c, "User role has no profile kind")
		return
	}

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Profile not found for user")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", ProfileEnvelope{Kind: user.Role, Profile: profile})
}

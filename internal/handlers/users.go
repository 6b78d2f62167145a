package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-coordination-server/internal/middleware"
	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/utils"
)

// UserHandler handles user account requests.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// GetUser handles fetching a single user by ID. Accessible by the user
// themselves or an admin.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("id")

	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if actorRole != models.RoleAdmin && actorID != userID {
		utils.Forbidden(c, "You are not authorized to view this user")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// UpdateUserRequest represents a partial user update. Assigning a role is how
// the first-login flow finishes account setup.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	Role     *string `json:"role" binding:"omitempty,oneof=patient doctor pharmacist admin"`
}

// UpdateUser handles partial updates of a user account. Accessible by the
// user themselves or an admin. Setting a role clears the first-login flag.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	actorID, _ := middleware.GetUserIDFromContext(c)
	actorRole, _ := middleware.GetUserRoleFromContext(c)
	if actorRole != models.RoleAdmin && actorID != userID {
		utils.Forbidden(c, "You are not authorized to update this user")
		return
	}

	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			utils.InternalServerError(c, "Failed to hash password: "+err.Error())
			return
		}
	}
	if req.Role != nil {
		user.Role = models.Role(*req.Role)
		user.FirstLogin = false
	}

	if err := h.DB.Save(&user).Error; err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	utils.Success(c, "User updated successfully", user.Sanitize())
}

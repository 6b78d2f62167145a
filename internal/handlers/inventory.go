package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/utils"
)

// InventoryHandler handles the pharmacist stock ledger. All routes are gated
// to the pharmacist role at the route layer.
type InventoryHandler struct {
	DB *gorm.DB
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{DB: db}
}

// InventoryRequest represents the body for creating or updating an inventory
// item.
type InventoryRequest struct {
	MedicationName string    `json:"medicationName" binding:"required"`
	BatchNumber    string    `json:"batchNumber" binding:"required"`
	ExpirationDate time.Time `json:"expirationDate" binding:"required"`
	Quantity       *int      `json:"quantity" binding:"required,gte=0"`
}

// CreateInventory handles creating a new inventory item.
func (h *InventoryHandler) CreateInventory(c *gin.Context) {
	var req InventoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	item := models.InventoryItem{
		MedicationName: req.MedicationName,
		BatchNumber:    req.BatchNumber,
		ExpirationDate: req.ExpirationDate,
		Quantity:       *req.Quantity,
	}
	if err := h.DB.Create(&item).Error; err != nil {
		utils.InternalServerError(c, "Failed to create inventory item: "+err.Error())
		return
	}
	utils.Created(c, "Inventory item created successfully", item)
}

// GetAllInventory handles listing all inventory items.
func (h *InventoryHandler) GetAllInventory(c *gin.Context) {
	var items []models.InventoryItem
	if err := h.DB.Order("expiration_date asc").Find(&items).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch inventory: "+err.Error())
		return
	}
	utils.Success(c, "Inventory fetched successfully", items)
}

// GetInventoryByID handles fetching a single inventory item.
func (h *InventoryHandler) GetInventoryByID(c *gin.Context) {
	var item models.InventoryItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Inventory item not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Inventory item fetched successfully", item)
}

// UpdateInventory handles updating an inventory item.
func (h *InventoryHandler) UpdateInventory(c *gin.Context) {
	var req InventoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var item models.InventoryItem
	if err := h.DB.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Inventory item not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	item.MedicationName = req.MedicationName
	item.BatchNumber = req.BatchNumber
	item.ExpirationDate = req.ExpirationDate
	item.Quantity = *req.Quantity

	if err := h.DB.Save(&item).Error; err != nil {
		utils.InternalServerError(c, "Failed to update inventory item: "+err.Error())
		return
	}
	utils.Success(c, "Inventory item updated successfully", item)
}

// DeleteInventory handles deleting an inventory item.
func (h *InventoryHandler) DeleteInventory(c *gin.Context) {
	res := h.DB.Delete(&models.InventoryItem{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete inventory item: "+res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Inventory item not found")
		return
	}
	utils.Success(c, "Inventory item deleted successfully", nil)
}

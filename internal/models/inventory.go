package models

import (
	"time"
)

// InventoryItem is one batch of medication stock managed by pharmacists.
// Its lifecycle is independent of the appointment workflow.
type InventoryItem struct {
	BaseModel
	MedicationName string    `gorm:"size:150;not null" json:"medicationName"`
	BatchNumber    string    `gorm:"size:100;not null" json:"batchNumber"`
	ExpirationDate time.Time `gorm:"not null" json:"expirationDate"`
	Quantity       int       `gorm:"not null" json:"quantity"`
}

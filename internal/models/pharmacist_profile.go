package models

// PharmacistProfile holds the pharmacist-specific attributes for a user with
// the pharmacist role.
type PharmacistProfile struct {
	BaseModel
	UserID        string `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Phone         string `gorm:"size:30" json:"phone"`
	PharmacyName  string `gorm:"size:150" json:"pharmacyName"`
	LicenseNumber string `gorm:"size:100" json:"licenseNumber"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

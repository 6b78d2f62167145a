package models

import (
	"time"
)

// PatientFileCategory distinguishes the two legacy file lists kept on the
// patient profile (separate from appointment-level diagnostic reports).
type PatientFileCategory string

const (
	PatientFileDiagnosticReport PatientFileCategory = "diagnostic_report"
	PatientFileMedicalRecord    PatientFileCategory = "medical_record"
)

// PatientProfile holds the patient-specific attributes for a user with the
// patient role.
type PatientProfile struct {
	BaseModel
	UserID     string   `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Age        int      `json:"age"`
	Gender     string   `gorm:"size:20" json:"gender"`
	Phone      string   `gorm:"size:30" json:"phone"`
	Address    string   `gorm:"size:255" json:"address"`
	BloodGroup string   `gorm:"size:10" json:"bloodGroup"`
	Allergies  []string `gorm:"serializer:json" json:"allergies"`

	// Emergency contact fields are required together.
	EmergencyContactName     string `gorm:"size:100" json:"emergencyContactName"`
	EmergencyContactPhone    string `gorm:"size:30" json:"emergencyContactPhone"`
	EmergencyContactRelation string `gorm:"size:50" json:"emergencyContactRelation"`

	// Relations
	User  User          `gorm:"foreignKey:UserID" json:"-"`
	Files []PatientFile `gorm:"foreignKey:PatientProfileID" json:"files,omitempty"`
}

// PatientFile is a file reference attached directly to a patient profile.
type PatientFile struct {
	BaseModel
	PatientProfileID string              `gorm:"size:36;index;not null" json:"-"`
	Category         PatientFileCategory `gorm:"size:30;not null" json:"category"`
	FileName         string              `gorm:"size:255" json:"fileName"`
	FileURL          string              `gorm:"size:512" json:"fileUrl"`
	UploadedAt       time.Time           `json:"uploadedAt"`
}

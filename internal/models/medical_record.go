package models

// MedicalRecord is a persistent per-patient clinical summary, distinct from
// any single appointment. Created on first documentation of a visit and
// updated in place afterwards.
type MedicalRecord struct {
	BaseModel
	PatientID       string   `gorm:"size:36;index;not null" json:"patientId"`
	Diagnosis       string   `gorm:"type:text" json:"diagnosis"`
	Notes           string   `gorm:"type:text" json:"notes"`
	Files           []string `gorm:"serializer:json" json:"files"`
	PrescriptionIDs []string `gorm:"serializer:json" json:"prescriptions"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}

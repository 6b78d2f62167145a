package models

// Prescription is a medication list issued by a doctor, usually against an
// appointment. Medication rows are created with it and not edited afterwards.
type Prescription struct {
	BaseModel
	DoctorID      string  `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID     string  `gorm:"size:36;index;not null" json:"patientId"`
	AppointmentID *string `gorm:"size:36" json:"appointmentId,omitempty"`
	Notes         string  `gorm:"type:text" json:"notes"`

	// Relations
	Doctor      User         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient     User         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Medications []Medication `gorm:"foreignKey:PrescriptionID" json:"medications"`
}

// Medication is one line item of a prescription.
type Medication struct {
	BaseModel
	PrescriptionID string `gorm:"size:36;index;not null" json:"-"`
	Name           string `gorm:"size:150;not null" json:"name"`
	Dosage         string `gorm:"size:100" json:"dosage"`
	Frequency      string `gorm:"size:100" json:"frequency"`
	Duration       string `gorm:"size:100" json:"duration"`
	Instructions   string `gorm:"size:255" json:"instructions"`
}

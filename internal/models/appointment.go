package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusApproved  AppointmentStatus = "approved"
	StatusRejected  AppointmentStatus = "rejected"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment ties one patient to one doctor at a concrete instant and
// accumulates clinical artifacts as the visit progresses. At most one
// prescription and one medical record may be linked; diagnostic reports
// accumulate.
type Appointment struct {
	BaseModel
	DoctorID       string            `gorm:"size:36;index:idx_doctor_date,unique" json:"doctorId"`
	PatientID      string            `gorm:"size:36;index" json:"patientId"`
	Date           time.Time         `gorm:"not null;index:idx_doctor_date,unique" json:"date"`
	Reason         string            `gorm:"size:255" json:"reason"`
	Status         AppointmentStatus `gorm:"size:20;default:'pending'" json:"status"`
	Diagnosis      string            `gorm:"type:text" json:"diagnosis"`
	Notes          string            `gorm:"type:text" json:"notes"`
	SuggestedTests []string          `gorm:"serializer:json" json:"suggestedTests"`

	PrescriptionID  *string `gorm:"size:36" json:"prescriptionId,omitempty"`
	MedicalRecordID *string `gorm:"size:36" json:"medicalRecordId,omitempty"`

	// Relations
	Doctor            User               `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient           User               `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Prescription      *Prescription      `gorm:"foreignKey:PrescriptionID" json:"prescription,omitempty"`
	MedicalRecord     *MedicalRecord     `gorm:"foreignKey:MedicalRecordID" json:"medicalRecord,omitempty"`
	DiagnosticReports []DiagnosticReport `gorm:"foreignKey:AppointmentID" json:"diagnosticReports,omitempty"`
}

// DiagnosticReport is a named, timestamped file reference attached to an
// appointment (lab or imaging results).
type DiagnosticReport struct {
	BaseModel
	AppointmentID string    `gorm:"size:36;index;not null" json:"-"`
	Name          string    `gorm:"size:255" json:"name"`
	FileURL       string    `gorm:"size:512" json:"fileUrl"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

package appointment

import (
	"context"
	"time"

	"healthcare-coordination-server/internal/models"
)

// Repository abstracts the persistence used by the appointment service.
type Repository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetWeeklySlotsByDoctor(ctx context.Context, doctorUserID string) ([]models.WeeklySlot, error)

	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	GetAppointmentDetail(ctx context.Context, id string) (*models.Appointment, error)
	SaveAppointment(ctx context.Context, appt *models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	CountByDoctorAndDate(ctx context.Context, doctorID string, date time.Time, excludeID string) (int64, error)

	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListCompletedByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string, completedOnly bool) ([]models.Appointment, error)

	CreatePrescription(ctx context.Context, p *models.Prescription) error
	GetMedicalRecord(ctx context.Context, id string) (*models.MedicalRecord, error)
	CreateMedicalRecord(ctx context.Context, rec *models.MedicalRecord) error
	SaveMedicalRecord(ctx context.Context, rec *models.MedicalRecord) error
	AddDiagnosticReport(ctx context.Context, report *models.DiagnosticReport) error
}

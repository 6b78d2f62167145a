package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"healthcare-coordination-server/internal/models"
)

// GormRepository implements Repository on top of the shared gorm connection.
type GormRepository struct {
	DB *gorm.DB
}

// NewGormRepository creates a new GormRepository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepository) GetWeeklySlotsByDoctor(ctx context.Context, doctorUserID string) ([]models.WeeklySlot, error) {
	var profile models.DoctorProfile
	err := r.DB.WithContext(ctx).
		Preload("WeeklySlots", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		First(&profile, "user_id = ?", doctorUserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return profile.WeeklySlots, nil
}

func (r *GormRepository) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return r.DB.WithContext(ctx).Create(appt).Error
}

func (r *GormRepository) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := r.DB.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (r *GormRepository) GetAppointmentDetail(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.DB.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Prescription").
		Preload("Prescription.Medications").
		Preload("MedicalRecord").
		Preload("DiagnosticReports", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at asc")
		}).
		First(&appt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (r *GormRepository) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return r.DB.WithContext(ctx).Save(appt).Error
}

func (r *GormRepository) DeleteAppointment(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) CountByDoctorAndDate(ctx context.Context, doctorID string, date time.Time, excludeID string) (int64, error) {
	var count int64
	query := r.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ?", doctorID, date)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.DB.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("date asc").
		Find(&appts).Error
	return appts, err
}

func (r *GormRepository) ListCompletedByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.DB.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ? AND status = ?", doctorID, models.StatusCompleted).
		Order("date desc").
		Find(&appts).Error
	return appts, err
}

func (r *GormRepository) ListByPatient(ctx context.Context, patientID string, completedOnly bool) ([]models.Appointment, error) {
	query := r.DB.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID)
	if completedOnly {
		query = query.Where("status = ?", models.StatusCompleted)
	}
	var appts []models.Appointment
	err := query.Order("date desc").Find(&appts).Error
	return appts, err
}

func (r *GormRepository) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) GetMedicalRecord(ctx context.Context, id string) (*models.MedicalRecord, error) {
	var rec models.MedicalRecord
	if err := r.DB.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *GormRepository) CreateMedicalRecord(ctx context.Context, rec *models.MedicalRecord) error {
	return r.DB.WithContext(ctx).Create(rec).Error
}

func (r *GormRepository) SaveMedicalRecord(ctx context.Context, rec *models.MedicalRecord) error {
	return r.DB.WithContext(ctx).Save(rec).Error
}

func (r *GormRepository) AddDiagnosticReport(ctx context.Context, report *models.DiagnosticReport) error {
	return r.DB.WithContext(ctx).Create(report).Error
}

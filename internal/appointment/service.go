package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/scheduling"
)

// Service implements the appointment lifecycle: booking against the doctor's
// weekly availability, doctor decisions over the status state machine, and
// attachment of clinical artifacts.
type Service struct {
	repo Repository
}

// NewService creates a new appointment Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams are the inputs for booking an appointment.
type CreateParams struct {
	DoctorID  string
	PatientID string
	Date      time.Time
	Reason    string
}

// Create books a new appointment in status pending. The date must be strictly
// in the future, must fall inside one of the doctor's current weekly slots,
// and the doctor must not already have an appointment at that instant.
func (s *Service) Create(ctx context.Context, p CreateParams) (*models.Appointment, error) {
	doctor, err := s.repo.GetUser(ctx, p.DoctorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("load doctor: %w", err)
	}
	if doctor.Role != models.RoleDoctor {
		return nil, ErrDoctorNotFound
	}

	patient, err := s.repo.GetUser(ctx, p.PatientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}
	if patient.Role != models.RolePatient {
		return nil, ErrPatientNotFound
	}

	if err := s.validateBookingDate(ctx, p.DoctorID, p.Date, ""); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		DoctorID:  p.DoctorID,
		PatientID: p.PatientID,
		Date:      p.Date,
		Reason:    p.Reason,
		Status:    models.StatusPending,
	}
	if err := s.repo.CreateAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}
	return appt, nil
}

// EditParams is a partial patch for an appointment's booking fields.
type EditParams struct {
	Date   *time.Time
	Reason *string
}

// Edit applies a partial patch. Only the owning doctor or an admin may edit;
// a changed date is re-validated like a fresh booking.
func (s *Service) Edit(ctx context.Context, id, actorID string, actorRole models.Role, p EditParams) (*models.Appointment, error) {
	appt, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && appt.DoctorID != actorID {
		return nil, ErrForbidden
	}

	if p.Date != nil {
		if err := s.validateBookingDate(ctx, appt.DoctorID, *p.Date, appt.ID); err != nil {
			return nil, err
		}
		appt.Date = *p.Date
	}
	if p.Reason != nil {
		appt.Reason = *p.Reason
	}

	if err := s.repo.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

// Delete removes an appointment. Only the owning doctor or an admin may
// delete one.
func (s *Service) Delete(ctx context.Context, id, actorID string, actorRole models.Role) error {
	appt, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && appt.DoctorID != actorID {
		return ErrForbidden
	}
	return s.repo.DeleteAppointment(ctx, id)
}

// Get fetches one appointment with patient and doctor identity. Allowed for
// the involved patient, the involved doctor, and admins.
func (s *Service) Get(ctx context.Context, id, actorID string, actorRole models.Role) (*models.Appointment, error) {
	appt, err := s.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorRole != models.RoleAdmin && appt.DoctorID != actorID && appt.PatientID != actorID {
		return nil, ErrForbidden
	}
	return appt, nil
}

// Dashboard fetches the appointment joined with patient, doctor, prescription
// and medical record. Only the assigned doctor may view it.
func (s *Service) Dashboard(ctx context.Context, id, actorID string) (*models.Appointment, error) {
	appt, err := s.repo.GetAppointmentDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != actorID {
		return nil, ErrForbidden
	}
	return appt, nil
}

// DiagnosisParams carry the clinical summary written by the doctor.
type DiagnosisParams struct {
	Diagnosis      string
	Notes          string
	SuggestedTests []string
}

// UpdateDiagnosis overwrites diagnosis, notes and suggested tests. Full
// replace: an empty test list clears the field.
func (s *Service) UpdateDiagnosis(ctx context.Context, id, actorID string, p DiagnosisParams) (*models.Appointment, error) {
	appt, err := s.ownedByDoctor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	appt.Diagnosis = p.Diagnosis
	appt.Notes = p.Notes
	appt.SuggestedTests = p.SuggestedTests

	if err := s.repo.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

// MedicationParams is one prescription line item.
type MedicationParams struct {
	Name         string
	Dosage       string
	Frequency    string
	Duration     string
	Instructions string
}

// PrescriptionParams are the inputs for issuing a prescription against an
// appointment.
type PrescriptionParams struct {
	Medications []MedicationParams
	Notes       string
}

// AddPrescription issues a new prescription referencing the doctor, the
// appointment's patient, and the appointment, then links it. An appointment
// can hold at most one prescription; a second call fails rather than
// orphaning the first.
func (s *Service) AddPrescription(ctx context.Context, id, actorID string, p PrescriptionParams) (*models.Prescription, error) {
	appt, err := s.ownedByDoctor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if appt.PrescriptionID != nil {
		return nil, ErrPrescriptionExists
	}

	prescription := &models.Prescription{
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		AppointmentID: &appt.ID,
		Notes:         p.Notes,
	}
	for _, m := range p.Medications {
		prescription.Medications = append(prescription.Medications, models.Medication{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
			Instructions: m.Instructions,
		})
	}

	if err := s.repo.CreatePrescription(ctx, prescription); err != nil {
		return nil, fmt.Errorf("create prescription: %w", err)
	}

	appt.PrescriptionID = &prescription.ID
	if err := s.repo.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("link prescription: %w", err)
	}
	return prescription, nil
}

// RecordParams are the inputs for documenting a visit on the patient's
// medical record.
type RecordParams struct {
	Diagnosis string
	Notes     string
}

// UpsertMedicalRecord creates the linked medical record on first
// documentation and mutates it in place afterwards. The appointment ends up
// with exactly one record either way.
func (s *Service) UpsertMedicalRecord(ctx context.Context, id, actorID string, p RecordParams) (*models.MedicalRecord, error) {
	appt, err := s.ownedByDoctor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if appt.MedicalRecordID != nil {
		rec, err := s.repo.GetMedicalRecord(ctx, *appt.MedicalRecordID)
		if err != nil {
			return nil, fmt.Errorf("load medical record: %w", err)
		}
		rec.Diagnosis = p.Diagnosis
		rec.Notes = p.Notes
		if err := s.repo.SaveMedicalRecord(ctx, rec); err != nil {
			return nil, fmt.Errorf("save medical record: %w", err)
		}
		return rec, nil
	}

	rec := &models.MedicalRecord{
		PatientID: appt.PatientID,
		Diagnosis: p.Diagnosis,
		Notes:     p.Notes,
	}
	if err := s.repo.CreateMedicalRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("create medical record: %w", err)
	}

	appt.MedicalRecordID = &rec.ID
	if err := s.repo.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("link medical record: %w", err)
	}
	return rec, nil
}

// AddDiagnosticReport appends a named, timestamped file reference to the
// appointment's report list. The caller owns the stored file and is expected
// to remove it when this returns an error.
func (s *Service) AddDiagnosticReport(ctx context.Context, id, actorID, name, fileURL string) (*models.DiagnosticReport, error) {
	appt, err := s.ownedByDoctor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	report := &models.DiagnosticReport{
		AppointmentID: appt.ID,
		Name:          name,
		FileURL:       fileURL,
		UploadedAt:    time.Now(),
	}
	if err := s.repo.AddDiagnosticReport(ctx, report); err != nil {
		return nil, fmt.Errorf("add diagnostic report: %w", err)
	}
	return report, nil
}

// Decide records the doctor's decision on a pending appointment: approved or
// rejected. Any other target status, or deciding a non-pending appointment,
// fails.
func (s *Service) Decide(ctx context.Context, id, actorID string, status models.AppointmentStatus) (*models.Appointment, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidTransition
	}
	appt, err := s.ownedByDoctor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(appt.Status, status) {
		return nil, ErrInvalidTransition
	}

	appt.Status = status
	if err := s.repo.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

// Complete marks the appointment completed. Completing an already completed
// appointment is a no-op; completing a rejected one fails.
func (s *Service) Complete(ctx context.Context, id, actorID string) (*models.Appointment, error) {
	appt, err := s.ownedByDoctor(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.StatusCompleted {
		return appt, nil
	}
	if !CanTransition(appt.Status, models.StatusCompleted) {
		return nil, ErrInvalidTransition
	}

	appt.Status = models.StatusCompleted
	if err := s.repo.SaveAppointment(ctx, appt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}
	return appt, nil
}

// ListForDoctor returns all appointments for a doctor, earliest first, with
// patient identity preloaded.
func (s *Service) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

// PastConsultations returns a doctor's completed appointments, most recent
// first.
func (s *Service) PastConsultations(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.repo.ListCompletedByDoctor(ctx, doctorID)
}

// ListForPatient returns a patient's appointments, date descending. Patients
// may only list their own.
func (s *Service) ListForPatient(ctx context.Context, patientID, actorID string, actorRole models.Role, completedOnly bool) ([]models.Appointment, error) {
	if actorRole != models.RoleAdmin && actorID != patientID {
		return nil, ErrForbidden
	}
	return s.repo.ListByPatient(ctx, patientID, completedOnly)
}

// AvailableSlots expands the doctor's weekly recurring slots into concrete
// bookable instants over the coming window.
func (s *Service) AvailableSlots(ctx context.Context, doctorID string, windowDays int) ([]scheduling.ConcreteSlot, error) {
	slots, err := s.repo.GetWeeklySlotsByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return scheduling.ExpandWeeklySlots(slots, time.Now(), windowDays), nil
}

// validateBookingDate enforces the three booking rules: strictly future,
// inside the doctor's current availability, and not colliding with another
// appointment of the same doctor.
func (s *Service) validateBookingDate(ctx context.Context, doctorID string, date time.Time, excludeID string) error {
	if !date.After(time.Now()) {
		return ErrPastDate
	}

	slots, err := s.repo.GetWeeklySlotsByDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	if !scheduling.CoversInstant(slots, date) {
		return ErrSlotUnavailable
	}

	count, err := s.repo.CountByDoctorAndDate(ctx, doctorID, date, excludeID)
	if err != nil {
		return fmt.Errorf("check booking conflict: %w", err)
	}
	if count > 0 {
		return ErrSlotTaken
	}
	return nil
}

// ownedByDoctor loads an appointment and verifies the actor is its assigned
// doctor.
func (s *Service) ownedByDoctor(ctx context.Context, id, actorID string) (*models.Appointment, error) {
	appt, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != actorID {
		return nil, ErrForbidden
	}
	return appt, nil
}

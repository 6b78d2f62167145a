package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"healthcare-coordination-server/internal/models"
)

type mockRepo struct {
	users         map[string]*models.User
	slots         map[string][]models.WeeklySlot
	appts         map[string]*models.Appointment
	prescriptions map[string]*models.Prescription
	records       map[string]*models.MedicalRecord
	reports       map[string][]models.DiagnosticReport
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		users:         make(map[string]*models.User),
		slots:         make(map[string][]models.WeeklySlot),
		appts:         make(map[string]*models.Appointment),
		prescriptions: make(map[string]*models.Prescription),
		records:       make(map[string]*models.MedicalRecord),
		reports:       make(map[string][]models.DiagnosticReport),
	}
}

func (m *mockRepo) GetUser(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) GetWeeklySlotsByDoctor(_ context.Context, doctorUserID string) ([]models.WeeklySlot, error) {
	if _, ok := m.users[doctorUserID]; !ok {
		return nil, ErrDoctorNotFound
	}
	return m.slots[doctorUserID], nil
}

func (m *mockRepo) CreateAppointment(_ context.Context, appt *models.Appointment) error {
	appt.ID = uuid.New().String()
	cp := *appt
	m.appts[appt.ID] = &cp
	return nil
}

func (m *mockRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) GetAppointmentDetail(ctx context.Context, id string) (*models.Appointment, error) {
	return m.GetAppointment(ctx, id)
}

func (m *mockRepo) SaveAppointment(_ context.Context, appt *models.Appointment) error {
	if _, ok := m.appts[appt.ID]; !ok {
		return ErrNotFound
	}
	cp := *appt
	m.appts[appt.ID] = &cp
	return nil
}

func (m *mockRepo) DeleteAppointment(_ context.Context, id string) error {
	if _, ok := m.appts[id]; !ok {
		return ErrNotFound
	}
	delete(m.appts, id)
	return nil
}

func (m *mockRepo) CountByDoctorAndDate(_ context.Context, doctorID string, date time.Time, excludeID string) (int64, error) {
	var count int64
	for _, a := range m.appts {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (m *mockRepo) ListByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range m.appts {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockRepo) ListCompletedByDoctor(_ context.Context, doctorID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range m.appts {
		if a.DoctorID == doctorID && a.Status == models.StatusCompleted {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID string, completedOnly bool) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range m.appts {
		if a.PatientID != patientID {
			continue
		}
		if completedOnly && a.Status != models.StatusCompleted {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepo) CreatePrescription(_ context.Context, p *models.Prescription) error {
	p.ID = uuid.New().String()
	cp := *p
	m.prescriptions[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetMedicalRecord(_ context.Context, id string) (*models.MedicalRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockRepo) CreateMedicalRecord(_ context.Context, rec *models.MedicalRecord) error {
	rec.ID = uuid.New().String()
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *mockRepo) SaveMedicalRecord(_ context.Context, rec *models.MedicalRecord) error {
	if _, ok := m.records[rec.ID]; !ok {
		return ErrNotFound
	}
	cp := *rec
	m.records[rec.ID] = &cp
	return nil
}

func (m *mockRepo) AddDiagnosticReport(_ context.Context, report *models.DiagnosticReport) error {
	report.ID = uuid.New().String()
	m.reports[report.AppointmentID] = append(m.reports[report.AppointmentID], *report)
	return nil
}

// fixture wires a doctor with Monday and Wednesday availability and one
// patient.
type fixture struct {
	svc       *Service
	repo      *mockRepo
	doctorID  string
	patientID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newMockRepo()

	doctor := &models.User{Role: models.RoleDoctor, Name: "Dr. Gray"}
	doctor.ID = uuid.New().String()
	patient := &models.User{Role: models.RolePatient, Name: "Pat Jones"}
	patient.ID = uuid.New().String()
	repo.users[doctor.ID] = doctor
	repo.users[patient.ID] = patient

	repo.slots[doctor.ID] = []models.WeeklySlot{
		{Day: "Monday", StartTime: "09:00", EndTime: "10:00"},
		{Day: "Wednesday", StartTime: "14:00", EndTime: "15:00"},
	}

	return &fixture{
		svc:       NewService(repo),
		repo:      repo,
		doctorID:  doctor.ID,
		patientID: patient.ID,
	}
}

// nextWeekday returns the next future occurrence of the given weekday at the
// given wall-clock time, at least one day out.
func nextWeekday(day time.Weekday, hour, minute int) time.Time {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

func (f *fixture) book(t *testing.T) *models.Appointment {
	t.Helper()
	appt, err := f.svc.Create(context.Background(), CreateParams{
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		Date:      nextWeekday(time.Monday, 9, 0),
		Reason:    "checkup",
	})
	if err != nil {
		t.Fatalf("book: unexpected error: %v", err)
	}
	return appt
}

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)

	appt := f.book(t)

	if appt.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", appt.Status)
	}
	if appt.ID == "" {
		t.Error("expected an assigned ID")
	}
	if _, ok := f.repo.appts[appt.ID]; !ok {
		t.Error("appointment not persisted")
	}
}

func TestCreate_PastDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateParams{
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		Date:      time.Now().Add(-time.Hour),
	})
	if !errors.Is(err, ErrPastDate) {
		t.Errorf("err = %v, want ErrPastDate", err)
	}
}

func TestCreate_OutsideAvailability(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateParams{
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		Date:      nextWeekday(time.Tuesday, 12, 0),
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("err = %v, want ErrSlotUnavailable", err)
	}
}

func TestCreate_DoubleBookingConflict(t *testing.T) {
	f := newFixture(t)
	f.book(t)

	otherPatient := &models.User{Role: models.RolePatient}
	otherPatient.ID = uuid.New().String()
	f.repo.users[otherPatient.ID] = otherPatient

	_, err := f.svc.Create(context.Background(), CreateParams{
		DoctorID:  f.doctorID,
		PatientID: otherPatient.ID,
		Date:      nextWeekday(time.Monday, 9, 0),
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("err = %v, want ErrSlotTaken", err)
	}
}

func TestCreate_UnknownParties(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateParams{
		DoctorID:  uuid.New().String(),
		PatientID: f.patientID,
		Date:      nextWeekday(time.Monday, 9, 0),
	})
	if !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("unknown doctor: err = %v, want ErrDoctorNotFound", err)
	}

	// A patient ID pointing at a doctor account is rejected too.
	_, err = f.svc.Create(context.Background(), CreateParams{
		DoctorID:  f.doctorID,
		PatientID: f.doctorID,
		Date:      nextWeekday(time.Monday, 9, 0),
	})
	if !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("doctor as patient: err = %v, want ErrPatientNotFound", err)
	}
}

func TestEdit_RevalidatesDate(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	newDate := nextWeekday(time.Wednesday, 14, 0)
	updated, err := f.svc.Edit(context.Background(), appt.ID, f.doctorID, models.RoleDoctor, EditParams{Date: &newDate})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.Date.Equal(newDate) {
		t.Errorf("date = %v, want %v", updated.Date, newDate)
	}

	past := time.Now().Add(-time.Hour)
	if _, err := f.svc.Edit(context.Background(), appt.ID, f.doctorID, models.RoleDoctor, EditParams{Date: &past}); !errors.Is(err, ErrPastDate) {
		t.Errorf("past date: err = %v, want ErrPastDate", err)
	}

	offSlot := nextWeekday(time.Friday, 9, 0)
	if _, err := f.svc.Edit(context.Background(), appt.ID, f.doctorID, models.RoleDoctor, EditParams{Date: &offSlot}); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("off-slot date: err = %v, want ErrSlotUnavailable", err)
	}
}

func TestEdit_KeepingOwnDateIsNoConflict(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	// Re-submitting the same date must not collide with itself.
	date := appt.Date
	reason := "follow-up"
	updated, err := f.svc.Edit(context.Background(), appt.ID, f.doctorID, models.RoleDoctor, EditParams{Date: &date, Reason: &reason})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Reason != "follow-up" {
		t.Errorf("reason = %q, want follow-up", updated.Reason)
	}
}

func TestEdit_Authorization(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	reason := "changed"
	if _, err := f.svc.Edit(context.Background(), appt.ID, f.patientID, models.RolePatient, EditParams{Reason: &reason}); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}

	if _, err := f.svc.Edit(context.Background(), uuid.New().String(), f.doctorID, models.RoleDoctor, EditParams{Reason: &reason}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	if err := f.svc.Delete(context.Background(), appt.ID, f.patientID, models.RolePatient); !errors.Is(err, ErrForbidden) {
		t.Errorf("patient delete: err = %v, want ErrForbidden", err)
	}
	if err := f.svc.Delete(context.Background(), appt.ID, f.doctorID, models.RoleDoctor); err != nil {
		t.Fatalf("owner delete: unexpected error: %v", err)
	}
	if err := f.svc.Delete(context.Background(), appt.ID, f.doctorID, models.RoleDoctor); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting twice: err = %v, want ErrNotFound", err)
	}
}

func TestDashboard_AssignedDoctorOnly(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	if _, err := f.svc.Dashboard(context.Background(), appt.ID, f.doctorID); err != nil {
		t.Errorf("assigned doctor: unexpected error: %v", err)
	}

	other := uuid.New().String()
	if _, err := f.svc.Dashboard(context.Background(), appt.ID, other); !errors.Is(err, ErrForbidden) {
		t.Errorf("other user: err = %v, want ErrForbidden", err)
	}
}

func TestUpdateDiagnosis_FullReplace(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	_, err := f.svc.UpdateDiagnosis(context.Background(), appt.ID, f.doctorID, DiagnosisParams{
		Diagnosis:      "flu",
		Notes:          "rest",
		SuggestedTests: []string{"blood test"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := f.svc.UpdateDiagnosis(context.Background(), appt.ID, f.doctorID, DiagnosisParams{
		Diagnosis: "flu",
		Notes:     "rest",
	})
	if len(got.SuggestedTests) != 0 {
		t.Errorf("expected empty list to clear suggested tests, got %v", got.SuggestedTests)
	}
}

func TestUpdateDiagnosis_Forbidden(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	if _, err := f.svc.UpdateDiagnosis(context.Background(), appt.ID, f.patientID, DiagnosisParams{}); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestAddPrescription_LinksOnce(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	params := PrescriptionParams{
		Medications: []MedicationParams{{Name: "Paracetamol", Dosage: "500mg", Frequency: "2x daily"}},
		Notes:       "after meals",
	}
	p, err := f.svc.AddPrescription(context.Background(), appt.ID, f.doctorID, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.PatientID != f.patientID || p.DoctorID != f.doctorID {
		t.Error("prescription parties do not match the appointment")
	}
	if p.AppointmentID == nil || *p.AppointmentID != appt.ID {
		t.Error("prescription not linked back to the appointment")
	}

	stored := f.repo.appts[appt.ID]
	if stored.PrescriptionID == nil || *stored.PrescriptionID != p.ID {
		t.Error("appointment not linked to the prescription")
	}

	if _, err := f.svc.AddPrescription(context.Background(), appt.ID, f.doctorID, params); !errors.Is(err, ErrPrescriptionExists) {
		t.Errorf("second prescription: err = %v, want ErrPrescriptionExists", err)
	}
	if len(f.repo.prescriptions) != 1 {
		t.Errorf("expected exactly 1 stored prescription, got %d", len(f.repo.prescriptions))
	}
}

func TestUpsertMedicalRecord_CreateThenUpdate(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	first, err := f.svc.UpsertMedicalRecord(context.Background(), appt.ID, f.doctorID, RecordParams{Diagnosis: "flu", Notes: "rest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := f.svc.UpsertMedicalRecord(context.Background(), appt.ID, f.doctorID, RecordParams{Diagnosis: "pneumonia", Notes: "antibiotics"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected the same record to be updated, got %s then %s", first.ID, second.ID)
	}
	if len(f.repo.records) != 1 {
		t.Errorf("expected exactly 1 medical record, got %d", len(f.repo.records))
	}
	if got := f.repo.records[first.ID]; got.Diagnosis != "pneumonia" {
		t.Errorf("diagnosis = %q, want the second call's value", got.Diagnosis)
	}
}

func TestAddDiagnosticReport(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	report, err := f.svc.AddDiagnosticReport(context.Background(), appt.ID, f.doctorID, "X-Ray", "http://localhost:5000/uploads/x.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.UploadedAt.IsZero() {
		t.Error("expected an upload timestamp")
	}
	if len(f.repo.reports[appt.ID]) != 1 {
		t.Errorf("expected 1 report, got %d", len(f.repo.reports[appt.ID]))
	}

	if _, err := f.svc.AddDiagnosticReport(context.Background(), appt.ID, f.patientID, "X-Ray", "url"); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-doctor: err = %v, want ErrForbidden", err)
	}
}

func TestDecide(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	updated, err := f.svc.Decide(context.Background(), appt.ID, f.doctorID, models.StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", updated.Status)
	}

	// Approving twice is not a valid transition.
	if _, err := f.svc.Decide(context.Background(), appt.ID, f.doctorID, models.StatusApproved); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double approve: err = %v, want ErrInvalidTransition", err)
	}

	// The decision endpoint only accepts approved or rejected.
	if _, err := f.svc.Decide(context.Background(), appt.ID, f.doctorID, models.StatusCompleted); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("decide completed: err = %v, want ErrInvalidTransition", err)
	}
}

func TestDecide_RejectIsTerminal(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	if _, err := f.svc.Decide(context.Background(), appt.ID, f.doctorID, models.StatusRejected); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.Complete(context.Background(), appt.ID, f.doctorID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completing rejected: err = %v, want ErrInvalidTransition", err)
	}
}

func TestComplete_Idempotent(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	first, err := f.svc.Complete(context.Background(), appt.ID, f.doctorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", first.Status)
	}

	second, err := f.svc.Complete(context.Background(), appt.ID, f.doctorID)
	if err != nil {
		t.Errorf("second complete: unexpected error: %v", err)
	}
	if second.Status != models.StatusCompleted {
		t.Errorf("second complete: status = %q, want completed", second.Status)
	}
}

func TestComplete_Forbidden(t *testing.T) {
	f := newFixture(t)
	appt := f.book(t)

	if _, err := f.svc.Complete(context.Background(), appt.ID, f.patientID); !errors.Is(err, ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestListForPatient_Authorization(t *testing.T) {
	f := newFixture(t)
	f.book(t)

	if _, err := f.svc.ListForPatient(context.Background(), f.patientID, f.doctorID, models.RoleDoctor, false); !errors.Is(err, ErrForbidden) {
		t.Errorf("other user: err = %v, want ErrForbidden", err)
	}

	appts, err := f.svc.ListForPatient(context.Background(), f.patientID, f.patientID, models.RolePatient, false)
	if err != nil {
		t.Fatalf("self: unexpected error: %v", err)
	}
	if len(appts) != 1 {
		t.Errorf("expected 1 appointment, got %d", len(appts))
	}
}

// Full patient-visit walkthrough: book a Wednesday slot, document, complete,
// and find it in the completed listing.
func TestAppointmentWalkthrough(t *testing.T) {
	f := newFixture(t)

	appt, err := f.svc.Create(context.Background(), CreateParams{
		DoctorID:  f.doctorID,
		PatientID: f.patientID,
		Date:      nextWeekday(time.Wednesday, 14, 0),
		Reason:    "checkup",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if appt.Status != models.StatusPending {
		t.Fatalf("status = %q, want pending", appt.Status)
	}

	if _, err := f.svc.UpdateDiagnosis(context.Background(), appt.ID, f.doctorID, DiagnosisParams{
		Diagnosis:      "flu",
		Notes:          "rest",
		SuggestedTests: []string{"blood test"},
	}); err != nil {
		t.Fatalf("diagnosis: %v", err)
	}

	if _, err := f.svc.Complete(context.Background(), appt.ID, f.doctorID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	completed, err := f.svc.ListForPatient(context.Background(), f.patientID, f.patientID, models.RolePatient, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != appt.ID {
		t.Fatalf("completed listing = %v, want the walked-through appointment", completed)
	}
	if completed[0].Diagnosis != "flu" || len(completed[0].SuggestedTests) != 1 {
		t.Error("clinical fields were not carried through")
	}
}

package main

import (
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"healthcare-coordination-server/internal/config"
	"healthcare-coordination-server/internal/models"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	doctors, err := seedDoctors(db, 10)
	if err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	patients, err := seedPatients(db, 50)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedPharmacists(db, 3); err != nil {
		log.Fatalf("seed pharmacists: %v", err)
	}
	if err := seedAppointments(db, doctors, patients, 80); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

var specialties = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func seedDoctors(db *gorm.DB, count int) ([]models.User, error) {
	log.Printf("seeding %d doctors", count)

	var doctors []models.User
	for i := 0; i < count; i++ {
		user := models.User{
			Name:       gofakeit.Name(),
			Email:      gofakeit.Email(),
			Role:       models.RoleDoctor,
			FirstLogin: false,
		}
		if err := user.SetPassword("password123"); err != nil {
			return nil, err
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		profile := models.DoctorProfile{
			UserID:          user.ID,
			Specialization:  specialties[gofakeit.Number(0, len(specialties)-1)],
			Qualifications:  []string{"MBBS", "MD"},
			ExperienceYears: gofakeit.Number(2, 30),
			Phone:           gofakeit.Phone(),
			Gender:          gofakeit.Gender(),
			Bio:             gofakeit.Sentence(12),
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}

		// A couple of morning and afternoon windows per doctor
		for _, day := range pick(weekdays, 3) {
			slots := []models.WeeklySlot{
				{DoctorProfileID: profile.ID, Day: day, StartTime: "09:00", EndTime: "12:00"},
				{DoctorProfileID: profile.ID, Day: day, StartTime: "14:00", EndTime: "17:00"},
			}
			for i := range slots {
				if err := db.Create(&slots[i]).Error; err != nil {
					return nil, err
				}
			}
		}

		doctors = append(doctors, user)
	}

	log.Println("doctors seeded")
	return doctors, nil
}

func seedPatients(db *gorm.DB, count int) ([]models.User, error) {
	log.Printf("seeding %d patients", count)

	bloodGroups := []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

	var patients []models.User
	for i := 0; i < count; i++ {
		user := models.User{
			Name:       gofakeit.Name(),
			Email:      gofakeit.Email(),
			Role:       models.RolePatient,
			FirstLogin: false,
		}
		if err := user.SetPassword("password123"); err != nil {
			return nil, err
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		profile := models.PatientProfile{
			UserID:                   user.ID,
			Age:                      gofakeit.Number(18, 85),
			Gender:                   gofakeit.Gender(),
			Phone:                    gofakeit.Phone(),
			Address:                  gofakeit.Address().Address,
			BloodGroup:               bloodGroups[gofakeit.Number(0, len(bloodGroups)-1)],
			Allergies:                []string{gofakeit.BeerName()},
			EmergencyContactName:     gofakeit.Name(),
			EmergencyContactPhone:    gofakeit.Phone(),
			EmergencyContactRelation: "spouse",
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}

		patients = append(patients, user)
	}

	log.Println("patients seeded")
	return patients, nil
}

func seedPharmacists(db *gorm.DB, count int) error {
	log.Printf("seeding %d pharmacists", count)

	for i := 0; i < count; i++ {
		user := models.User{
			Name:       gofakeit.Name(),
			Email:      gofakeit.Email(),
			Role:       models.RolePharmacist,
			FirstLogin: false,
		}
		if err := user.SetPassword("password123"); err != nil {
			return err
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}

		profile := models.PharmacistProfile{
			UserID:        user.ID,
			Phone:         gofakeit.Phone(),
			PharmacyName:  gofakeit.Company() + " Pharmacy",
			LicenseNumber: gofakeit.UUID(),
		}
		if err := db.Create(&profile).Error; err != nil {
			return err
		}
	}

	log.Println("pharmacists seeded")
	return nil
}

func seedAppointments(db *gorm.DB, doctors, patients []models.User, count int) error {
	log.Printf("seeding %d appointments", count)

	statuses := []models.AppointmentStatus{
		models.StatusPending,
		models.StatusApproved,
		models.StatusCompleted,
	}

	for i := 0; i < count; i++ {
		doctor := doctors[gofakeit.Number(0, len(doctors)-1)]
		patient := patients[gofakeit.Number(0, len(patients)-1)]

		// Spread dates over the past and coming month, on the hour
		offsetHours := gofakeit.Number(-30*24, 30*24)
		date := time.Now().Truncate(time.Hour).Add(time.Duration(offsetHours) * time.Hour)

		status := statuses[gofakeit.Number(0, len(statuses)-1)]
		if date.After(time.Now()) && status == models.StatusCompleted {
			status = models.StatusPending
		}

		appt := models.Appointment{
			DoctorID:  doctor.ID,
			PatientID: patient.ID,
			Date:      date,
			Reason:    gofakeit.Sentence(6),
			Status:    status,
		}
		if err := db.Create(&appt).Error; err != nil {
			// Unique (doctor, date) collisions are expected with random picks
			continue
		}
	}

	log.Println("appointments seeded")
	return nil
}

func pick(options []string, n int) []string {
	if n >= len(options) {
		return options
	}
	shuffled := make([]string, len(options))
	copy(shuffled, options)
	gofakeit.ShuffleStrings(shuffled)
	return shuffled[:n]
}

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"healthcare-coordination-server/internal/appointment"
	"healthcare-coordination-server/internal/config"
	"healthcare-coordination-server/internal/handlers"
	"healthcare-coordination-server/internal/middleware"
	"healthcare-coordination-server/internal/models"
	"healthcare-coordination-server/internal/storage"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, store *storage.DiskStore, log zerolog.Logger) {
	// Initialize the appointment lifecycle service and handlers
	apptService := appointment.NewService(appointment.NewGormRepository(db))

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	doctorHandler := handlers.NewDoctorHandler(db, apptService)
	appointmentHandler := handlers.NewAppointmentHandler(apptService, store, log)
	prescriptionHandler := handlers.NewPrescriptionHandler(db)
	inventoryHandler := handlers.NewInventoryHandler(db)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		// User accounts (role assignment on first login happens here)
		userRoutes := private.Group("/users")
		{
			userRoutes.GET("/:id", userHandler.GetUser)
			userRoutes.PUT("/:id", userHandler.UpdateUser)
		}

		// Role profiles, one set of routes per kind plus the tagged union
		doctorProfiles := private.Group("/doctor-profiles")
		{
			doctorProfiles.POST("", profileHandler.CreateDoctorProfile)
			doctorProfiles.GET("", profileHandler.GetDoctorProfiles)
			doctorProfiles.GET("/:id", profileHandler.GetDoctorProfile)
			doctorProfiles.PUT("/:id", profileHandler.UpdateDoctorProfile)
		}
		patientProfiles := private.Group("/patient-profiles")
		{
			patientProfiles.POST("", profileHandler.CreatePatientProfile)
			patientProfiles.GET("/:id", profileHandler.GetPatientProfile)
			patientProfiles.PUT("/:id", profileHandler.UpdatePatientProfile)
		}
		pharmacistProfiles := private.Group("/pharmacist-profiles")
		{
			pharmacistProfiles.POST("", profileHandler.CreatePharmacistProfile)
			pharmacistProfiles.GET("/:id", profileHandler.GetPharmacistProfile)
			pharmacistProfiles.PUT("/:id", profileHandler.UpdatePharmacistProfile)
		}
		private.GET("/profiles/:userId", profileHandler.GetProfileForUser)

		// Doctor surface: availability management and own-appointment
		// bookkeeping. Booking is open to patients (for themselves),
		// doctors and admins.
		doctorRoutes := private.Group("/doctors")
		{
			doctorRoutes.GET("/:doctorId/available-slots", doctorHandler.GetAvailableSlots)
			doctorRoutes.PUT("/:doctorId/available-slots",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), doctorHandler.UpdateAvailableSlots)
			doctorRoutes.POST("/:doctorId/weekly-slots",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), doctorHandler.AddWeeklySlot)
			doctorRoutes.DELETE("/:doctorId/weekly-slots/:slotId",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), doctorHandler.DeleteWeeklySlot)

			doctorRoutes.GET("/:doctorId/appointments",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), doctorHandler.GetAppointmentsByDoctor)
			doctorRoutes.GET("/:doctorId/past-consultations",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), doctorHandler.GetPastConsultations)

			doctorRoutes.POST("/appointments",
				middleware.RoleAuthMiddleware(models.RolePatient, models.RoleDoctor, models.RoleAdmin), doctorHandler.CreateAppointment)
			doctorRoutes.GET("/appointments/:appointmentId", doctorHandler.GetAppointmentByID)
			doctorRoutes.PUT("/appointments/:appointmentId",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), doctorHandler.EditAppointment)
			doctorRoutes.DELETE("/appointments/:appointmentId",
				middleware.RoleAuthMiddleware(models.RoleDoctor, models.RoleAdmin), doctorHandler.DeleteAppointment)
		}

		// Clinical appointment lifecycle
		appointmentRoutes := private.Group("/appointments")
		{
			doctorOnly := middleware.RoleAuthMiddleware(models.RoleDoctor)

			appointmentRoutes.GET("/doctor/:doctorId", doctorOnly, appointmentHandler.ListForDoctor)
			appointmentRoutes.GET("/patient/:patientId", appointmentHandler.ListForPatient)

			appointmentRoutes.GET("/:appointmentId/dashboard", doctorOnly, appointmentHandler.GetDashboard)
			appointmentRoutes.PUT("/:appointmentId/diagnosis", doctorOnly, appointmentHandler.UpdateDiagnosis)
			appointmentRoutes.POST("/:appointmentId/prescription", doctorOnly, appointmentHandler.AddPrescription)
			appointmentRoutes.PUT("/:appointmentId/medical-record", doctorOnly, appointmentHandler.UpsertMedicalRecord)
			appointmentRoutes.POST("/:appointmentId/diagnostic-report", doctorOnly, appointmentHandler.AddDiagnosticReport)
			appointmentRoutes.PUT("/:appointmentId/status", doctorOnly, appointmentHandler.Decide)
			appointmentRoutes.PUT("/:appointmentId/complete", doctorOnly, appointmentHandler.Complete)
		}

		// Prescription access
		prescriptionRoutes := private.Group("/prescriptions")
		{
			pharmacistOnly := middleware.RoleAuthMiddleware(models.RolePharmacist)

			prescriptionRoutes.GET("", pharmacistOnly, prescriptionHandler.GetAllPrescriptions)
			prescriptionRoutes.GET("/search", pharmacistOnly, prescriptionHandler.SearchPrescriptions)
			prescriptionRoutes.GET("/patient/:patientId", prescriptionHandler.GetPatientPrescriptions)
			prescriptionRoutes.GET("/:id", prescriptionHandler.GetPrescriptionByID)
		}

		// Pharmacy inventory
		inventoryRoutes := private.Group("/inventory")
		inventoryRoutes.Use(middleware.RoleAuthMiddleware(models.RolePharmacist))
		{
			inventoryRoutes.POST("", inventoryHandler.CreateInventory)
			inventoryRoutes.GET("", inventoryHandler.GetAllInventory)
			inventoryRoutes.GET("/:id", inventoryHandler.GetInventoryByID)
			inventoryRoutes.PUT("/:id", inventoryHandler.UpdateInventory)
			inventoryRoutes.DELETE("/:id", inventoryHandler.DeleteInventory)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}

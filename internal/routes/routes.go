package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/clinicdesk/clinic-scheduler/internal/audit"
	"github.com/clinicdesk/clinic-scheduler/internal/config"
	"github.com/clinicdesk/clinic-scheduler/internal/domain/schedule"
	"github.com/clinicdesk/clinic-scheduler/internal/handlers"
	infraRepo "github.com/clinicdesk/clinic-scheduler/internal/infra/repository"
	"github.com/clinicdesk/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/clinicdesk/clinic-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	scanner := schedule.NewScanner(cfg.Schedule(), appointmentRepo)
	clock := ucAppointment.SystemClock{Timezone: cfg.Timezone}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		scanner,
		clock,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListMyAppointments(
		appointmentRepo,
	)

	nextSlotUC := ucAppointment.NewGetNextSlot(
		appointmentRepo,
		scanner,
		clock,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	patientHandler := handlers.NewPatientHandler(db, cfg)
	doctorHandler := handlers.NewDoctorHandler(db, cfg)
	staffHandler := handlers.NewStaffHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		listAppointmentsUC,
		nextSlotUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// RATE LIMITS
	// ======================================================
	authLimit := middleware.RateLimit(rdb, 20, time.Minute, "rl:auth")
	bookingLimit := middleware.RateLimit(rdb, 30, time.Minute, "rl:booking")

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/patients/register", authLimit, patientHandler.Register)
		api.POST("/patients/login", authLimit, patientHandler.Login)
		api.POST("/doctors/login", authLimit, doctorHandler.Login)
		api.POST("/staff/register/:admin_key", authLimit, staffHandler.Register)
		api.POST("/staff/login", authLimit, staffHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:id/next-slot", appointmentHandler.NextSlot)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me/profile", profileHandler.Get)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments",
				middleware.RequireRole("patient"),
				bookingLimit,
				appointmentHandler.Create,
			)
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.PATCH("/me/appointments/:reference/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:reference/complete",
				middleware.RequireRole("doctor", "staff"),
				appointmentHandler.Complete,
			)

			// ------------------------------
			// STAFF ADMIN
			// ------------------------------
			staffOnly := secured.Group("/")
			staffOnly.Use(middleware.RequireRole("staff"))
			{
				staffOnly.POST("/doctors/register", doctorHandler.Register)
				staffOnly.DELETE("/doctors/:id", doctorHandler.Delete)
				staffOnly.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

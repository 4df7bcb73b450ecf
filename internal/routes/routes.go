package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/HealthyFeetMX/clinic-scheduler/internal/audit"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/config"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/handlers"
	infraRepo "github.com/HealthyFeetMX/clinic-scheduler/internal/infra/repository"
	"github.com/HealthyFeetMX/clinic-scheduler/internal/middleware"
	ucAppointment "github.com/HealthyFeetMX/clinic-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	editAppointmentUC := ucAppointment.NewEditAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	finalizeAppointmentUC := ucAppointment.NewFinalizeAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByClientUC := ucAppointment.NewListAppointmentsByClient(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	employeeHandler := handlers.NewEmployeeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	saleHandler := handlers.NewSaleHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, rdb)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		editAppointmentUC,
		finalizeAppointmentUC,
		cancelAppointmentUC,
		listByDateUC,
		listByClientUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/employees", employeeHandler.List)
			secured.POST("/employees", employeeHandler.Create)
			secured.PATCH("/employees/:id", employeeHandler.Update)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/clients", clientHandler.List)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.GET("/clients/:id/appointments", appointmentHandler.ListByClient)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id", appointmentHandler.Edit)
			secured.POST("/appointments/:id/finalize", appointmentHandler.Finalize)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/sales", saleHandler.List)
			secured.GET("/dashboard", dashboardHandler.Summary)
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pranamithra/scheduler/internal/audit"
	"github.com/pranamithra/scheduler/internal/config"
	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/handlers"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/infra/blob"
	infraRepo "github.com/pranamithra/scheduler/internal/infra/repository"
	"github.com/pranamithra/scheduler/internal/middleware"
	"github.com/pranamithra/scheduler/internal/models"
	ucAppointment "github.com/pranamithra/scheduler/internal/usecase/appointment"
	ucSchedule "github.com/pranamithra/scheduler/internal/usecase/schedule"
	"github.com/pranamithra/scheduler/internal/validators"
)

// Deps are the long-lived collaborators built by the serve command.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     zerolog.Logger
	Cache   domain.AvailabilityCache
	Archive blob.Archive
	Audit   *audit.Dispatcher
	Emails  validators.EmailChecker
	Loc     *time.Location
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	httperr.UseWireFieldNames()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES: SCHEDULES
	// ======================================================
	previewSlotsUC := ucSchedule.NewPreviewSlots()
	saveScheduleUC := ucSchedule.NewSaveSchedule(appointmentRepo, d.Cache, d.Audit)
	getScheduleUC := ucSchedule.NewGetSchedule(appointmentRepo)
	listSchedulesUC := ucSchedule.NewListSchedules(appointmentRepo)
	saveCostsUC := ucSchedule.NewSaveCosts(appointmentRepo, d.Audit)
	getCostsUC := ucSchedule.NewGetCosts(appointmentRepo)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, d.Cache)
	bookUC := ucAppointment.NewBook(appointmentRepo, d.Cache, d.Audit, d.Loc)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Cache, d.Audit, d.Loc)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Cache, d.Audit, d.Loc)
	listMineUC := ucAppointment.NewListForCustomer(appointmentRepo)
	detailUC := ucAppointment.NewDetail(appointmentRepo)
	findByTokenUC := ucAppointment.NewFindByToken(appointmentRepo)
	dashboardUC := ucAppointment.NewDashboard(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Emails, d.Log)
	meHandler := handlers.NewMeHandler(d.DB, d.Log)
	publicHandler := handlers.NewPublicHandler(d.DB, availabilityUC, d.Log)

	scheduleHandler := handlers.NewScheduleHandler(
		previewSlotsUC,
		saveScheduleUC,
		getScheduleUC,
		listSchedulesUC,
		saveCostsUC,
		getCostsUC,
		d.Log,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		completeUC,
		listMineUC,
		detailUC,
		findByTokenUC,
		dashboardUC,
		d.Archive,
		d.Log,
	)

	adminHandler := handlers.NewAdminHandler(d.DB, d.Audit, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Loc, d.Log)

	auth := middleware.AuthMiddleware(d.Config)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/customer/register", authHandler.RegisterCustomer)
		api.POST("/auth/customer/login", authHandler.LoginCustomer)
		api.POST("/auth/doctor/register", authHandler.RegisterDoctor)
		api.POST("/auth/doctor/login", authHandler.LoginDoctor)
		api.POST("/auth/admin/login", authHandler.LoginAdmin)

		api.GET("/slots/preview", scheduleHandler.Preview)
		api.GET("/doctors", publicHandler.ListDoctors)
		api.GET("/doctors/:id/availability", publicHandler.Availability)

		// ------------------------------
		// ANY SIGNED-IN USER
		// ------------------------------
		api.GET("/me", auth, meHandler.GetMe)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		customer := api.Group("/customer", auth, middleware.RequireRole(identity.RoleCustomer))
		{
			customer.POST("/appointments", appointmentHandler.Book)
			customer.GET("/appointments", appointmentHandler.ListMine)
			customer.GET("/appointments/:id", appointmentHandler.Detail)
			customer.GET("/appointments/:id/confirmation.pdf", appointmentHandler.Confirmation)
			customer.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		}

		// ------------------------------
		// DOCTOR
		// ------------------------------
		doctor := api.Group("/doctor", auth, middleware.RequireRole(identity.RoleDoctor))
		{
			doctor.PUT("/schedules", scheduleHandler.Save)
			doctor.GET("/schedules", scheduleHandler.List)
			doctor.GET("/schedules/:date", scheduleHandler.Get)

			doctor.PUT("/costs", scheduleHandler.SaveCosts)
			doctor.GET("/costs", scheduleHandler.GetCosts)

			doctor.GET("/dashboard", appointmentHandler.Dashboard)
			doctor.GET("/appointments/token/:token", appointmentHandler.FindByToken)
			doctor.GET("/appointments/:id", appointmentHandler.Detail)
			doctor.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			doctor.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin", auth, middleware.RequireRole(identity.RoleAdmin))
		{
			admin.PATCH("/doctors/:id/status", adminHandler.Allow(models.PermVerifyDoctor), adminHandler.SetDoctorStatus)
			admin.GET("/doctors", adminHandler.Allow(models.PermManageDoctors), adminHandler.ListDoctors)
			admin.DELETE("/doctors/:id", adminHandler.Allow(models.PermManageDoctors), adminHandler.DeleteDoctor)
			admin.GET("/customers", adminHandler.Allow(models.PermViewCustomers), adminHandler.ListCustomers)
			admin.GET("/appointments/:id", appointmentHandler.Detail)
			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/careconnect/clinic-scheduler/internal/audit"
	"github.com/careconnect/clinic-scheduler/internal/auth"
	"github.com/careconnect/clinic-scheduler/internal/config"
	"github.com/careconnect/clinic-scheduler/internal/handlers"
	infraRepo "github.com/careconnect/clinic-scheduler/internal/infra/repository"
	"github.com/careconnect/clinic-scheduler/internal/mailer"
	"github.com/careconnect/clinic-scheduler/internal/middleware"
	"github.com/careconnect/clinic-scheduler/internal/models"
	"github.com/careconnect/clinic-scheduler/internal/notification"
	"github.com/careconnect/clinic-scheduler/internal/realtime"
	"github.com/careconnect/clinic-scheduler/internal/storage"
	ucAppointment "github.com/careconnect/clinic-scheduler/internal/usecase/appointment"
)

// Deps are the process-owned singletons main wires up before the
// router is built. The realtime hub in particular lives here so its
// lifecycle is tied to the server, not to package state.
type Deps struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Log        *zap.Logger
	Tokens     *auth.TokenManager
	Revocation *auth.RevocationStore
	Hub        *realtime.Hub
	Mail       *mailer.Dispatcher
	Uploader   *storage.Uploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)

	auditLogger := audit.New(d.DB)
	auditDispatcher := audit.NewDispatcher(auditLogger, d.Log)

	notifDispatcher := notification.NewDispatcher(
		notificationRepo,
		d.Hub,
		d.Log,
		d.Cfg.StoreTimeout,
	)
	notifService := notification.NewService(notificationRepo, d.Cfg.StoreTimeout)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		notifDispatcher,
		d.Mail,
		auditDispatcher,
		d.Cfg.StoreTimeout,
		d.Cfg.EnforceAvailabilityWindows,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		notifDispatcher,
		d.Mail,
		auditDispatcher,
		d.Cfg.StoreTimeout,
	)

	updateStatusUC := ucAppointment.NewUpdateAppointmentStatus(
		appointmentRepo,
		notifDispatcher,
		auditDispatcher,
		d.Cfg.StoreTimeout,
	)

	listPhysicianUC := ucAppointment.NewListPhysicianAppointments(appointmentRepo, d.Cfg.StoreTimeout)
	listPatientUC := ucAppointment.NewListPatientAppointments(appointmentRepo, d.Cfg.StoreTimeout)
	listAllUC := ucAppointment.NewListAllAppointments(appointmentRepo, d.Cfg.StoreTimeout)
	freeSlotsUC := ucAppointment.NewGetFreeSlots(appointmentRepo, d.Cfg.StoreTimeout)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens, d.Revocation)
	physicianHandler := handlers.NewPhysicianHandler(d.DB, d.Uploader)
	serviceHandler := handlers.NewServiceHandler(d.DB)
	availabilityHandler := handlers.NewAvailabilityHandler(appointmentRepo, auditDispatcher, d.Cfg.StoreTimeout)
	notificationHandler := handlers.NewNotificationHandler(notifService)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		cancelUC,
		updateStatusUC,
		listPhysicianUC,
		listPatientUC,
		listAllUC,
		freeSlotsUC,
		d.Cfg.Timezone,
	)

	realtimeHandler := realtime.NewHandler(d.Hub, d.Tokens, d.Revocation, d.Log)

	// ======================================================
	// ROUTES
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/physicians", physicianHandler.List)
		api.GET("/physicians/:id/availability", availabilityHandler.GetForPhysician)
		api.GET("/physicians/:id/slots", appointmentHandler.FreeSlots)

		api.GET("/services", serviceHandler.List)

		// The realtime gateway does its own token check during the
		// upgrade handshake.
		api.GET("/ws", realtimeHandler.HandleConnect)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens, d.Revocation))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/me/appointments", appointmentHandler.ListMine)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.PATCH(
				"/appointments/:id/status",
				middleware.RequireRole(models.RolePhysician),
				appointmentHandler.UpdateStatus,
			)

			secured.GET(
				"/appointments",
				middleware.RequireRole(models.RoleAdmin),
				appointmentHandler.ListAll,
			)

			// ------------------------------
			// AVAILABILITY (physician)
			// ------------------------------
			physician := secured.Group("/me")
			physician.Use(middleware.RequireRole(models.RolePhysician))
			{
				physician.GET("/availability", availabilityHandler.GetMine)
				physician.PUT("/availability", availabilityHandler.Update)
				physician.PATCH("/availability/status", availabilityHandler.SetStatus)
				physician.POST("/avatar", physicianHandler.UploadAvatar)
			}

			// ------------------------------
			// NOTIFICATIONS
			// ------------------------------
			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/read-all", notificationHandler.MarkAllRead)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)
			secured.DELETE("/me/notifications/:id", notificationHandler.Delete)

			// ------------------------------
			// ADMIN
			// ------------------------------
			secured.POST("/services", middleware.RequireRole(models.RoleAdmin), serviceHandler.Create)
			secured.PATCH("/services/:id", middleware.RequireRole(models.RoleAdmin), serviceHandler.Update)
			secured.GET("/audit-logs", middleware.RequireRole(models.RoleAdmin), auditLogsHandler.List)
		}
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cleanora-services/cleany-scheduler/internal/audit"
	"github.com/cleanora-services/cleany-scheduler/internal/clock"
	"github.com/cleanora-services/cleany-scheduler/internal/config"
	domain "github.com/cleanora-services/cleany-scheduler/internal/domain/booking"
	"github.com/cleanora-services/cleany-scheduler/internal/handlers"
	infraRepo "github.com/cleanora-services/cleany-scheduler/internal/infra/repository"
	"github.com/cleanora-services/cleany-scheduler/internal/middleware"
	"github.com/cleanora-services/cleany-scheduler/internal/storage"
	ucBooking "github.com/cleanora-services/cleany-scheduler/internal/usecase/booking"
)

// Deps carries the process-level collaborators main wires up once.
type Deps struct {
	Gateway  domain.PaymentGateway
	Locker   domain.Locker
	Notifier domain.Notifier
	Store    *storage.S3Store
	Clock    clock.Clock
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES - BOOKING
	// ======================================================
	placeOrderUC := ucBooking.NewPlaceOrder(
		bookingRepo,
		auditDispatcher,
		cfg.CompanyTimezone,
	)

	scheduleOrderUC := ucBooking.NewScheduleOrder(
		bookingRepo,
		deps.Gateway,
		deps.Locker,
		deps.Notifier,
		auditDispatcher,
		domain.DefaultHorizons(),
		cfg.CompanyTimezone,
	)

	rescheduleUC := ucBooking.NewReschedule(
		bookingRepo,
		deps.Locker,
		deps.Notifier,
		auditDispatcher,
		deps.Clock,
		cfg.CompanyTimezone,
	)

	cancelUC := ucBooking.NewCancelAppointment(
		bookingRepo,
		deps.Notifier,
		auditDispatcher,
		deps.Clock,
	)

	completeUC := ucBooking.NewCompleteAppointment(
		bookingRepo,
		deps.Notifier,
		auditDispatcher,
	)

	dispatchUC := ucBooking.NewDispatchAppointment(
		bookingRepo,
		deps.Notifier,
		auditDispatcher,
	)

	chargeUC := ucBooking.NewChargeSale(
		bookingRepo,
		deps.Gateway,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)

	orderHandler := handlers.NewOrderHandler(db, placeOrderUC, scheduleOrderUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		rescheduleUC,
		cancelUC,
		completeUC,
		dispatchUC,
		chargeUC,
		cfg.CompanyTimezone,
	)

	attachmentHandler := handlers.NewAttachmentHandler(db, deps.Store)
	notificationHandler := handlers.NewNotificationHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC (booking form)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", catalogHandler.ListServices)
			publicAPI.GET("/services/:slug", catalogHandler.GetServiceBySlug)
			publicAPI.POST("/orders", orderHandler.Place)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE (dashboard)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// ORDERS
			// ------------------------------
			secured.GET("/orders", orderHandler.List)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.POST("/orders/:id/schedule", orderHandler.Schedule)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/dispatch", appointmentHandler.Dispatch)
			secured.POST("/appointments/:id/charge", appointmentHandler.Charge)

			secured.POST("/appointments/:id/attachments", attachmentHandler.Upload)
			secured.GET("/appointments/:id/attachments", attachmentHandler.List)

			// ------------------------------
			// CATALOG (admin)
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.POST("/taxes", catalogHandler.CreateTax)
				admin.GET("/taxes", catalogHandler.ListTaxes)
				admin.POST("/services", catalogHandler.CreateService)
				admin.POST("/packages", catalogHandler.CreatePackage)
				admin.POST("/items", catalogHandler.CreateItem)
				admin.GET("/items", catalogHandler.ListItems)
				admin.POST("/extras", catalogHandler.CreateExtra)
				admin.GET("/extras", catalogHandler.ListExtras)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}

			secured.GET("/notifications", notificationHandler.List)
			secured.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		}
	}
}

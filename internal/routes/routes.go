package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/audit"
	"github.com/BruksfildServices01/reserva-top/internal/config"
	"github.com/BruksfildServices01/reserva-top/internal/handlers"
	"github.com/BruksfildServices01/reserva-top/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/reserva-top/internal/infra/repository"
	"github.com/BruksfildServices01/reserva-top/internal/logging"
	"github.com/BruksfildServices01/reserva-top/internal/metrics"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/notify"
	"github.com/BruksfildServices01/reserva-top/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/reserva-top/internal/usecase/appointment"
)

// Deps são os singletons montados no main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *logging.Logger
	Clock   *timezone.Clock
	Redis   *redis.Client // nil quando REDIS_ADDR não está configurado
	Cache   *cache.AvailabilityCache
	Notify  *notify.Notifier
	Audit   *audit.Dispatcher
	Metrics *metrics.BookingMetrics
	// nil usa o registry padrão do prometheus
	Gatherer prometheus.Gatherer
	Uploader handlers.ImageUploader
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	metricsHandler := promhttp.Handler()
	if d.Gatherer != nil {
		metricsHandler = promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})
	}
	r.GET("/metrics", gin.WrapH(metricsHandler))

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	step := d.Config.SlotStepMinutes

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo, d.Clock, d.Cache, d.Logger, d.Metrics, step,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo, d.Clock, d.Cache, d.Audit, d.Notify, d.Logger, d.Metrics, step,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo, d.Clock, d.Cache, d.Audit, d.Notify,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo, d.Clock, d.Audit,
	)

	sweepUC := ucAppointment.NewSweepCompleted(appointmentRepo, d.Clock, d.Logger, d.Metrics)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, d.Clock, sweepUC, d.Logger)
	dashboardUC := ucAppointment.NewDashboard(appointmentRepo, d.Clock, sweepUC, d.Logger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config)
	adminHandler := handlers.NewAdminHandler(d.DB, d.Audit)
	meHandler := handlers.NewMeHandler(d.DB)
	profileHandler := handlers.NewProfileHandler(d.DB, d.Audit)

	serviceHandler := handlers.NewServiceHandler(d.DB, d.Audit)
	clientHandler := handlers.NewClientHandler(d.DB, d.Audit)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB, appointmentRepo, d.Clock, d.Cache, d.Audit)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsUC,
	)

	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)
	uploadHandler := handlers.NewUploadHandler(d.DB, d.Uploader, d.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Clock)

	publicHandler := handlers.NewPublicHandler(
		d.DB,
		appointmentRepo,
		d.Clock,
		getAvailabilityUC,
		createAppointmentUC,
		listAppointmentsUC,
		cancelAppointmentUC,
	)

	bookingLimiter := middleware.NewRateLimiter(
		d.Redis,
		d.Config.BookingRateLimit,
		d.Config.BookingRateWindow,
		"rl:booking",
		d.Logger,
		d.Metrics,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			// rotas fixas antes do :slug
			publicAPI.GET("/appointments", publicHandler.LookupAppointments)
			publicAPI.PATCH("/appointments/:id/cancel", publicHandler.CancelAppointment)

			publicAPI.GET("/:slug", publicHandler.Profile)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", bookingLimiter.Middleware(), publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))

		secured.GET("/me", meHandler.GetMe)

		// ------------------------------
		// 🔐 PROFISSIONAL
		// ------------------------------
		me := secured.Group("/me")
		me.Use(middleware.RequireRole(models.RoleProfessional), middleware.RequireProfessional(appointmentRepo))
		{
			me.GET("/profile", profileHandler.GetProfile)
			me.PATCH("/profile", profileHandler.UpdateProfile)
			me.PUT("/images/:kind", uploadHandler.UploadImage)

			me.GET("/services", serviceHandler.List)
			me.POST("/services", serviceHandler.Create)
			me.PATCH("/services/:id", serviceHandler.Update)

			me.GET("/working-hours", workingHoursHandler.Get)
			me.PUT("/working-hours", workingHoursHandler.Update)

			me.GET("/clients", clientHandler.List)
			me.PATCH("/clients/:id/block", clientHandler.SetBlocked)

			me.POST("/appointments", appointmentHandler.Create)
			me.GET("/appointments", appointmentHandler.ListByDate)
			me.GET("/appointments/month", appointmentHandler.ListByMonth)
			me.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			me.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

			me.GET("/dashboard", dashboardHandler.Get)
			me.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// 🛡️ ADMIN
		// ------------------------------
		admin := secured.Group("/admin")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/professionals", adminHandler.ListProfessionals)
			admin.PATCH("/professionals/:id/approve", adminHandler.Approve)
			admin.PATCH("/professionals/:id/reject", adminHandler.Reject)
			admin.PATCH("/professionals/:id/block", adminHandler.Block)
			admin.PATCH("/professionals/:id/unblock", adminHandler.Unblock)
		}
	}
}

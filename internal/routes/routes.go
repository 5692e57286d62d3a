package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/cache"
	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	"github.com/BruksfildServices01/pro-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/pro-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/pro-scheduler/internal/metrics"
	"github.com/BruksfildServices01/pro-scheduler/internal/middleware"
	"github.com/BruksfildServices01/pro-scheduler/internal/storage"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/validators"
)

// Deps are the process-wide singletons the routes are built from.
type Deps struct {
	DB        *gorm.DB
	Config    *config.Config
	Log       *logrus.Logger
	BusyCache *cache.BusyCache
	Photos    *storage.PhotoStore
	Audit     *audit.Dispatcher
	Metrics   *metrics.SchedulingMetrics
	Gatherer  prometheus.Gatherer
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	validators.Register()

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	loc := timezone.Location(d.Config.Timezone)
	clock := timezone.SystemClock(loc)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		d.BusyCache,
		clock,
		d.Metrics,
		d.Log,
	)
	createBookingUC := ucAppointment.NewCreateBooking(getAvailabilityUC, d.Audit)
	lookupClientUC := ucAppointment.NewLookupClient(appointmentRepo)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		d.BusyCache,
		clock,
		d.Audit,
	)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		clock,
		d.Audit,
	)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(
		getAvailabilityUC,
		createBookingUC,
		lookupClientUC,
		loc,
		d.Log,
	)
	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		loc,
		d.Log,
	)
	professionalHandler := handlers.NewProfessionalHandler(d.DB, d.Photos, d.Log)
	serviceHandler := handlers.NewServiceHandler(d.DB, d.Log)
	workingHoursHandler := handlers.NewWorkingHoursHandler(d.DB, d.Log)
	timeBlockHandler := handlers.NewTimeBlockHandler(d.DB, d.BusyCache, d.Audit, loc, d.Log)
	clientHandler := handlers.NewClientHandler(d.DB, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, loc, d.Log)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// booking flow
		api.POST("/availability", publicHandler.Availability)
		api.POST("/bookings", publicHandler.CreateBooking)
		api.POST("/clients/lookup", publicHandler.LookupClient)

		api.GET("/professionals", professionalHandler.Search)
		api.POST("/professionals", professionalHandler.Create)

		prof := api.Group("/professionals/:id")
		{
			prof.GET("", professionalHandler.Get)
			prof.PUT("/photo", professionalHandler.UploadPhoto)

			prof.GET("/services", serviceHandler.List)
			prof.POST("/services", serviceHandler.Create)
			prof.PATCH("/services/:serviceId", serviceHandler.Update)

			prof.GET("/working-hours", workingHoursHandler.Get)
			prof.PUT("/working-hours", workingHoursHandler.Update)

			prof.GET("/time-blocks", timeBlockHandler.List)
			prof.POST("/time-blocks", timeBlockHandler.Create)
			prof.DELETE("/time-blocks/:blockId", timeBlockHandler.Delete)

			prof.GET("/appointments", appointmentHandler.ListByDate)
			prof.GET("/appointments/month", appointmentHandler.ListByMonth)
			prof.PATCH("/appointments/:appointmentId/cancel", appointmentHandler.Cancel)
			prof.PATCH("/appointments/:appointmentId/complete", appointmentHandler.Complete)

			prof.GET("/clients", clientHandler.List)
		}

		api.GET("/audit-logs", auditLogsHandler.List)
	}
}

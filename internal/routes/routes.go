package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/advisorkit/scheduler/internal/audit"
	"github.com/advisorkit/scheduler/internal/cache"
	"github.com/advisorkit/scheduler/internal/config"
	"github.com/advisorkit/scheduler/internal/handlers"
	infraRepo "github.com/advisorkit/scheduler/internal/infra/repository"
	"github.com/advisorkit/scheduler/internal/middleware"
	"github.com/advisorkit/scheduler/internal/notify"
	ucBooking "github.com/advisorkit/scheduler/internal/usecase/booking"
	ucLink "github.com/advisorkit/scheduler/internal/usecase/link"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	availabilityCache *cache.AvailabilityCache,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifyDispatcher := notify.NewDispatcher(notify.NewLogNotifier(log), log)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(schedulingRepo, availabilityCache)

	createBookingUC := ucBooking.NewCreateBooking(
		schedulingRepo,
		auditDispatcher,
	)

	createLinkUC := ucLink.NewCreateLink(
		schedulingRepo,
		auditDispatcher,
	)

	deleteLinkUC := ucLink.NewDeleteLink(
		schedulingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	windowHandler := handlers.NewWindowHandler(db, auditDispatcher)
	linkHandler := handlers.NewLinkHandler(db, createLinkUC, deleteLinkUC)
	bookingHandler := handlers.NewBookingHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		availabilityUC,
		createBookingUC,
		availabilityCache,
		notifyDispatcher,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API (visitor-facing)
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RateLimitMiddleware(rate.Limit(5), 10))
		{
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API (advisor-facing)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/windows", windowHandler.Get)
			secured.PUT("/me/windows", windowHandler.Update)

			secured.GET("/me/links", linkHandler.List)
			secured.POST("/me/links", linkHandler.Create)
			secured.DELETE("/me/links/:id", linkHandler.Delete)

			secured.GET("/me/bookings", bookingHandler.List)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}

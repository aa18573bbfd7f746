package routes

import (
	"time"

	"fleet-scheduler-backend/internal/api/handlers"
	"fleet-scheduler-backend/internal/api/middleware"
	"fleet-scheduler-backend/internal/config"
	"fleet-scheduler-backend/internal/distance"
	"fleet-scheduler-backend/internal/repository"
	"fleet-scheduler-backend/internal/scheduler"
	"fleet-scheduler-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application and wires the
// background sweep. The returned scheduler is not yet started.
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, *scheduler.Scheduler) {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Actor())

	// Initialize validator and tuning store
	validator := validator.New()
	tuningStore := config.NewTuningStore(cfg.SuggestionTuning())

	// Initialize repositories
	driverRepo := repository.NewDriverRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	userRepo := repository.NewUserRepository(db)
	routeRepo := repository.NewRouteRepository(db)
	routeDistanceRepo := repository.NewRouteDistanceRepository(db)
	templateRepo := repository.NewRouteTemplateRepository(db)
	occurrenceRepo := repository.NewScheduleOccurrenceRepository(db)
	conflictRepo := repository.NewConflictRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	responsibilityRepo := repository.NewResponsibilityRepository(db)
	supportOfferRepo := repository.NewSupportOfferRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// Initialize services
	distanceProvider := distance.NewTableProvider(routeDistanceRepo)
	materializer := service.NewMaterializer(templateRepo, occurrenceRepo, tuningStore)
	auditService := service.NewAuditService(auditRepo)
	alertService := service.NewAlertService(alertRepo, responsibilityRepo)
	driverService := service.NewDriverService(driverRepo, auditService, validator)
	vehicleService := service.NewVehicleService(vehicleRepo, auditService, validator)
	userService := service.NewUserService(userRepo, auditService, validator)
	routeService := service.NewRouteService(routeRepo, routeDistanceRepo, distanceProvider, materializer, auditService, validator)
	templateService := service.NewTemplateService(templateRepo, occurrenceRepo, routeRepo, driverRepo, vehicleRepo, userRepo, materializer, auditService, validator)
	occurrenceService := service.NewOccurrenceService(occurrenceRepo, templateRepo, driverRepo, vehicleRepo, materializer, auditService, validator)
	conflictService := service.NewConflictService(db, conflictRepo, alertRepo, materializer, alertService)
	suggestionService := service.NewSuggestionService(db, suggestionRepo, alertRepo, materializer, alertService, distanceProvider, tuningStore)
	responsibilityService := service.NewResponsibilityService(responsibilityRepo, routeRepo, userRepo, auditService, validator)
	supportOfferService := service.NewSupportOfferService(supportOfferRepo, templateRepo, userRepo, occurrenceService, alertService, auditService, validator)

	// Initialize background sweep
	sweep := scheduler.New(supportOfferService, conflictService, suggestionService,
		time.Duration(cfg.SweepIntervalMinutes)*time.Minute)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	driverHandler := handlers.NewDriverHandler(driverService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	userHandler := handlers.NewUserHandler(userService)
	routeHandler := handlers.NewRouteHandler(routeService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	occurrenceHandler := handlers.NewOccurrenceHandler(occurrenceService)
	conflictHandler := handlers.NewConflictHandler(conflictService)
	suggestionHandler := handlers.NewSuggestionHandler(suggestionService)
	alertHandler := handlers.NewAlertHandler(alertService)
	responsibilityHandler := handlers.NewResponsibilityHandler(responsibilityService)
	supportOfferHandler := handlers.NewSupportOfferHandler(supportOfferService)
	tuningHandler := handlers.NewTuningHandler(tuningStore)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst))

	{
		// Driver routes
		drivers := v1.Group("/drivers")
		{
			drivers.GET("", driverHandler.ListDrivers)
			drivers.POST("", driverHandler.CreateDriver)
			drivers.GET("/:id", driverHandler.GetDriver)
			drivers.PUT("/:id", driverHandler.UpdateDriver)
			drivers.DELETE("/:id", driverHandler.DeleteDriver)
		}

		// Vehicle routes
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.ListVehicles)
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/alerts", alertHandler.ListUserAlerts)
			users.GET("/:id/support-offers", supportOfferHandler.ListUserOffers)
		}

		// Route routes
		routes := v1.Group("/routes")
		{
			routes.GET("", routeHandler.ListRoutes)
			routes.POST("", routeHandler.CreateRoute)
			routes.GET("/:id", routeHandler.GetRoute)
			routes.PUT("/:id", routeHandler.UpdateRoute)
			routes.DELETE("/:id", routeHandler.DeleteRoute)
			routes.GET("/:id/responsibilities", responsibilityHandler.ListRouteResponsibilities)
		}

		// Route distance routes
		v1.GET("/route-distances", routeHandler.ListDistances)
		v1.PUT("/route-distances", routeHandler.SetDistance)

		// Template routes
		templates := v1.Group("/templates")
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.PUT("/:id", templateHandler.UpdateTemplate)
			templates.POST("/:id/cancel", templateHandler.CancelTemplate)
			templates.PUT("/:id/occurrences/:date", occurrenceHandler.UpsertOverride)
			templates.DELETE("/:id/occurrences/:date", occurrenceHandler.DeleteOccurrence)
		}

		// Occurrence calendar
		v1.GET("/occurrences", occurrenceHandler.ListOccurrences)

		// Conflict routes
		conflicts := v1.Group("/conflicts")
		{
			conflicts.GET("", conflictHandler.ListConflicts)
			conflicts.POST("/detect", conflictHandler.DetectConflicts)
			conflicts.POST("/:id/resolve", conflictHandler.ResolveConflict)
			conflicts.POST("/:id/ignore", conflictHandler.IgnoreConflict)
		}

		// Suggestion routes
		suggestions := v1.Group("/suggestions")
		{
			suggestions.GET("", suggestionHandler.ListSuggestions)
			suggestions.POST("/generate", suggestionHandler.GenerateSuggestions)
			suggestions.POST("/:id/accept", suggestionHandler.AcceptSuggestion)
			suggestions.POST("/:id/reject", suggestionHandler.RejectSuggestion)
		}

		// Alert routes
		v1.POST("/alerts/:id/read", alertHandler.MarkAlertRead)

		// Responsibility routes
		responsibilities := v1.Group("/responsibilities")
		{
			responsibilities.POST("", responsibilityHandler.AssignResponsibility)
			responsibilities.DELETE("/:id", responsibilityHandler.RevokeResponsibility)
		}

		// Support offer routes
		supportOffers := v1.Group("/support-offers")
		{
			supportOffers.POST("", supportOfferHandler.CreateOffer)
			supportOffers.GET("/:id", supportOfferHandler.GetOffer)
			supportOffers.POST("/:id/respond", supportOfferHandler.RespondToOffer)
		}

		// Tuning configuration routes
		v1.GET("/config/tuning", tuningHandler.GetTuning)
		v1.PUT("/config/tuning", tuningHandler.UpdateTuning)

		// Audit trail routes
		v1.GET("/audit", auditHandler.ListAuditLogs)
	}

	return router, sweep
}

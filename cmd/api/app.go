package main

import (
	"net/http"
	"os"

	"casavista-listings/internal/handlers"
	"casavista-listings/internal/middleware"
	"casavista-listings/internal/models"
	"casavista-listings/internal/repositories"
	"casavista-listings/internal/services"
	"casavista-listings/internal/transformers"
	"casavista-listings/internal/validators"
	"casavista-listings/pkg/cache"
	"casavista-listings/pkg/config"
	"casavista-listings/pkg/database"
	"casavista-listings/pkg/identityclient"
	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Identity        *identityclient.Client
	HealthHandler   *handlers.HealthHandler
	PropertyHandler *handlers.PropertyHandler
	ImageHandler    *handlers.ImageHandler
	VisitHandler    *handlers.VisitHandler
	ProposalHandler *handlers.ProposalHandler
	FavoriteHandler *handlers.FavoriteHandler
	OwnerHandler    *handlers.OwnerHandler
	InternalHandler *handlers.InternalHandler
	RateLimiter     *middleware.RateLimiter
	Server          *http.Server
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeDatabase()
	app.initializeCache()
	app.initializeMetrics()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize the database connection and run schema migration
func (a *App) initializeDatabase() {
	if err := database.InitDB(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize database: %v", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(
		&models.Address{},
		&models.Property{},
		&models.PropertyImage{},
		&models.Visit{},
		&models.Proposal{},
		&models.Favorite{},
	); err != nil {
		logger.GlobalLogger.Errorf("Failed to run migrations: %v", err)
		os.Exit(1)
	}
}

// initialize the Redis cache
func (a *App) initializeCache() {
	if err := cache.InitRedis(a.Config); err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize Redis: %v", err)
		os.Exit(1)
	}
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(rate.Limit(a.Config.RateLimit.RequestsPerSecond), a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup()
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	// clients
	a.Identity = identityclient.NewClient(a.Config.Internal.IdentityServiceURL, a.Config.ClientTimeout())

	// repositories
	propertyRepo := repositories.NewPropertyRepository(database.DB)
	propertyCache := repositories.NewPropertyCache()
	imageRepo := repositories.NewImageRepository(database.DB)
	visitRepo := repositories.NewVisitRepository(database.DB)
	proposalRepo := repositories.NewProposalRepository(database.DB)
	favoriteRepo := repositories.NewFavoriteRepository(database.DB)

	// transformers
	addrTrans := transformers.NewAddressTransformer()
	propTrans := transformers.NewPropertyTransformer(addrTrans)

	// validators
	propertyValidator := validators.NewPropertyValidator()
	visitValidator := validators.NewVisitValidator()
	proposalValidator := validators.NewProposalValidator()

	// services
	propertyService := services.NewPropertyService(propertyRepo, propertyCache, propTrans, propertyValidator)
	imageService := services.NewImageService(imageRepo, propertyRepo)
	visitService := services.NewVisitService(visitRepo, propertyRepo, visitValidator)
	proposalService := services.NewProposalService(proposalRepo, propertyRepo, proposalValidator)
	favoriteService := services.NewFavoriteService(favoriteRepo, propertyRepo)
	ownerListingService := services.NewOwnerListingService(visitRepo, proposalRepo, a.Identity)
	relationService := services.NewRelationService(visitRepo, proposalRepo)

	// handlers
	a.HealthHandler = handlers.NewHealthHandler(a.Config)
	a.PropertyHandler = handlers.NewPropertyHandler(propertyService)
	a.ImageHandler = handlers.NewImageHandler(imageService)
	a.VisitHandler = handlers.NewVisitHandler(visitService)
	a.ProposalHandler = handlers.NewProposalHandler(proposalService)
	a.FavoriteHandler = handlers.NewFavoriteHandler(favoriteService)
	a.OwnerHandler = handlers.NewOwnerHandler(ownerListingService)
	a.InternalHandler = handlers.NewInternalHandler(relationService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	database.CloseDB()
	cache.CloseRedis()
}

package main

import (
	"net/http"
	"os"

	"casavista-listings/internal/handlers"
	idhandlers "casavista-listings/internal/identity/handlers"
	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/identity/repositories"
	"casavista-listings/internal/identity/services"
	"casavista-listings/internal/identity/validators"
	"casavista-listings/internal/middleware"
	"casavista-listings/pkg/cache"
	"casavista-listings/pkg/config"
	"casavista-listings/pkg/database"
	"casavista-listings/pkg/logger"
	"casavista-listings/pkg/metrics"
	"casavista-listings/pkg/relationclient"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config        *config.Config
	Router        *gin.Engine
	TokenService  *services.TokenService
	HealthHandler *handlers.HealthHandler
	AuthHandler   *idhandlers.AuthHandler
	UserHandler   *idhandlers.UserHandler
	RateLimiter   *middleware.RateLimiter
	Server        *http.Server
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
	if err := database.AutoMigrate(&models.Account{}); err != nil {
		logger.GlobalLogger.Errorf("Failed to run migrations: %v", err)
		os.Exit(1)
	}
}

// initialize the Redis connection backing the token denylist
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
	accountRepo := repositories.NewAccountRepository(database.DB)
	denylist := repositories.NewTokenDenylist()

	a.TokenService = services.NewTokenService(accountRepo, denylist, a.Config.Auth.JWTSecret, a.Config.TokenTTL())
	accountService := services.NewAccountService(accountRepo, validators.NewAccountValidator(), a.TokenService)

	relations := relationclient.NewClient(a.Config.Internal.PropertiesServiceURL, a.Config.Internal.Secret, a.Config.ClientTimeout())
	lookupService := services.NewUserLookupService(accountRepo, relations)

	a.HealthHandler = handlers.NewHealthHandler(a.Config)
	a.AuthHandler = idhandlers.NewAuthHandler(accountService, a.TokenService)
	a.UserHandler = idhandlers.NewUserHandler(accountService, lookupService)
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

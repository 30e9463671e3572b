package main

import (
	"net/http"

	idmiddleware "casavista-listings/internal/identity/middleware"
	"casavista-listings/internal/identity/models"
	"casavista-listings/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "casavista-listings/docs"
	_ "net/http/pprof"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupPlatformRoutes()
	a.setupAuthRoutes()
	a.setupAdminRoutes()
}

// setupPlatformRoutes configures health, metrics and documentation routes
func (a *App) setupPlatformRoutes() {
	a.Router.GET("/health", a.HealthHandler.Health)

	// Expose Prometheus metrics endpoint
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger UI and pprof profiling stay off in production
	if !a.Config.IsProduction() {
		a.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		a.Router.StaticFile("/swagger.json", "./docs/swagger.json")
		a.Router.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}
}

// setupAuthRoutes configures registration, login and session routes
func (a *App) setupAuthRoutes() {
	auth := a.Router.Group("/auth")
	auth.POST("/register", a.AuthHandler.Register)
	auth.POST("/login", a.AuthHandler.Login)
	auth.POST("/introspect", a.AuthHandler.Introspect)

	session := auth.Group("", idmiddleware.Session(a.TokenService))
	session.POST("/logout", a.AuthHandler.Logout)
	session.GET("/me", a.AuthHandler.Me)
}

// setupAdminRoutes configures the account management surface. Creation,
// listing and deactivation are admin-only. Single-account reads and updates
// are authorized in the services, which also allow property owners with a
// listing relation (reads) and self-service updates.
func (a *App) setupAdminRoutes() {
	admin := a.Router.Group("/admin/users", idmiddleware.Session(a.TokenService))
	admin.POST("", middleware.RequireRoles(models.RoleAdmin), a.UserHandler.CreateUser)
	admin.GET("", middleware.RequireRoles(models.RoleAdmin), a.UserHandler.ListUsers)
	admin.GET("/:id", a.UserHandler.GetUser)
	admin.PUT("/:id", a.UserHandler.UpdateUser)
	admin.PUT("/:id/password", a.UserHandler.ChangePassword)
	admin.DELETE("/:id", middleware.RequireRoles(models.RoleAdmin), a.UserHandler.DeactivateUser)
}

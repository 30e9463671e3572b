package main

import (
	"net/http"

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
	a.setupAPIRoutes()
	a.setupInternalRoutes()
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

// setupAPIRoutes configures the public API surface. Reads on properties and
// images are open; everything acting on behalf of a user needs a session, and
// listing-side mutations additionally need the PROPERTY_OWNER role. Ownership
// of the specific resource is checked in the services.
func (a *App) setupAPIRoutes() {
	session := middleware.Auth(a.Identity)
	owner := middleware.RequireRoles("PROPERTY_OWNER")

	// Properties
	a.Router.GET("/properties", a.PropertyHandler.ListProperties)
	a.Router.GET("/properties/:id", a.PropertyHandler.GetProperty)
	a.Router.POST("/properties", session, owner, a.PropertyHandler.CreateProperty)
	a.Router.PUT("/properties/:id", session, owner, a.PropertyHandler.UpdateProperty)
	a.Router.DELETE("/properties/:id", session, owner, a.PropertyHandler.DeleteProperty)

	// Property images
	a.Router.POST("/properties/:id/images", session, owner, a.ImageHandler.UploadImage)
	a.Router.GET("/properties/:id/images", a.ImageHandler.ListImages)
	a.Router.GET("/properties/:id/images/:imageId", a.ImageHandler.GetImage)
	a.Router.PUT("/properties/:id/images/:imageId/primary", session, owner, a.ImageHandler.SetPrimaryImage)
	a.Router.DELETE("/properties/:id/images/:imageId", session, owner, a.ImageHandler.DeleteImage)

	// Per-property interest, owner side
	a.Router.GET("/properties/:id/visits", session, owner, a.VisitHandler.ListPropertyVisits)
	a.Router.GET("/properties/:id/proposals", session, owner, a.ProposalHandler.ListPropertyProposals)

	// Owner dashboard
	myProperties := a.Router.Group("/my-properties", session, owner)
	{
		myProperties.GET("", a.PropertyHandler.ListOwnProperties)
		myProperties.GET("/visits", a.OwnerHandler.ListIncomingVisits)
		myProperties.GET("/proposals", a.OwnerHandler.ListIncomingProposals)
	}

	// Visits
	visits := a.Router.Group("/visits", session)
	{
		visits.POST("", a.VisitHandler.CreateVisit)
		visits.GET("/my-visits", a.VisitHandler.ListOwnVisits)
		visits.GET("/upcoming", a.VisitHandler.ListUpcomingVisits)
		visits.GET("/:id", a.VisitHandler.GetVisit)
		visits.PUT("/:id", a.VisitHandler.UpdateVisit)
		visits.POST("/:id/complete", owner, a.VisitHandler.CompleteVisit)
		visits.POST("/:id/cancel", a.VisitHandler.CancelVisit)
	}

	// Proposals
	proposals := a.Router.Group("/proposals", session)
	{
		proposals.POST("", a.ProposalHandler.CreateProposal)
		proposals.GET("/my-proposals", a.ProposalHandler.ListOwnProposals)
		proposals.GET("/:id", a.ProposalHandler.GetProposal)
		proposals.POST("/:id/accept", owner, a.ProposalHandler.AcceptProposal)
		proposals.POST("/:id/reject", owner, a.ProposalHandler.RejectProposal)
		proposals.POST("/:id/withdraw", a.ProposalHandler.WithdrawProposal)
	}

	// Favorites
	favorites := a.Router.Group("/favorites", session)
	{
		favorites.POST("/:propertyId", a.FavoriteHandler.AddFavorite)
		favorites.DELETE("/:propertyId", a.FavoriteHandler.RemoveFavorite)
		favorites.GET("/my-favorites", a.FavoriteHandler.ListFavorites)
	}
}

// setupInternalRoutes configures the service-to-service surface. The shared
// secret is the only gate here; no user session is involved.
func (a *App) setupInternalRoutes() {
	internal := a.Router.Group("/internal", middleware.InternalAuth(a.Config.Internal.Secret))
	{
		internal.GET("/check-user-property-relation", a.InternalHandler.CheckUserPropertyRelation)
	}
}

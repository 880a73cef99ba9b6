package routes

import (
	"github.com/gin-gonic/gin"

	"purser/internal/interfaces/http/handlers"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/authorization"
)

// AgencyRouteConfig holds dependencies for agency routes.
type AgencyRouteConfig struct {
	AgencyHandler  *handlers.AgencyHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// SetupAgencyRoutes configures agency signup and profile routes.
func SetupAgencyRoutes(engine *gin.Engine, cfg *AgencyRouteConfig) {
	engine.POST("/agencies", cfg.RateLimiter.Limit(), cfg.AgencyHandler.Register)

	agency := engine.Group("/agency")
	agency.Use(cfg.AuthMiddleware.RequireAuth())
	{
		agency.GET("", cfg.AgencyHandler.Get)
		agency.PATCH("", authorization.RequireAdmin(), cfg.AgencyHandler.Update)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"purser/internal/infrastructure/permission"
	"purser/internal/interfaces/http/handlers"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/logger"
)

// InviteRouteConfig holds dependencies for team invitation routes.
type InviteRouteConfig struct {
	InviteHandler  *handlers.InviteHandler
	TeamHandler    *handlers.TeamHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	Enforcer       *permission.Enforcer
	Logger         logger.Interface
}

// SetupInviteRoutes configures invitation and team management routes.
// Accepting an invite is unauthenticated: the invitee has no account yet.
func SetupInviteRoutes(engine *gin.Engine, cfg *InviteRouteConfig) {
	engine.POST("/invites/accept", cfg.RateLimiter.Limit(), cfg.InviteHandler.Accept)

	invites := engine.Group("/invites")
	invites.Use(cfg.AuthMiddleware.RequireAuth())
	invites.Use(middleware.RequirePermission(cfg.Enforcer, cfg.Logger, "invites", "write"))
	{
		invites.POST("", cfg.InviteHandler.Create)
		invites.GET("", cfg.InviteHandler.List)
		invites.DELETE("/:sid", cfg.InviteHandler.Revoke)
	}

	team := engine.Group("/team")
	team.Use(cfg.AuthMiddleware.RequireAuth())
	{
		team.GET("/members", cfg.TeamHandler.ListMembers)
	}
}

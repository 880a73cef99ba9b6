package routes

import (
	"github.com/gin-gonic/gin"

	"purser/internal/infrastructure/permission"
	"purser/internal/interfaces/http/handlers"
	"purser/internal/interfaces/http/middleware"
	"purser/internal/shared/logger"
)

// BillingRouteConfig holds dependencies for billing and webhook routes.
type BillingRouteConfig struct {
	BillingHandler *handlers.BillingHandler
	WebhookHandler *handlers.WebhookHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	Enforcer       *permission.Enforcer
	Logger         logger.Interface
}

// SetupBillingRoutes configures checkout, portal and provider webhook
// routes. The webhook endpoint is unauthenticated; its security is the
// signature over the raw body.
func SetupBillingRoutes(engine *gin.Engine, cfg *BillingRouteConfig) {
	billing := engine.Group("/billing")
	billing.Use(cfg.AuthMiddleware.RequireAuth())
	billing.Use(middleware.RequirePermission(cfg.Enforcer, cfg.Logger, "billing", "write"))
	{
		billing.POST("/checkout-session", cfg.BillingHandler.CreateCheckoutSession)
		billing.POST("/portal-session", cfg.BillingHandler.CreatePortalSession)
	}

	engine.POST("/webhooks/stripe", cfg.RateLimiter.Limit(), cfg.WebhookHandler.HandleStripeWebhook)
}

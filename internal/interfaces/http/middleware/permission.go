package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"purser/internal/infrastructure/permission"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

// RequirePermission checks the caller's role against the policy table for a
// resource/action pair. It assumes RequireAuth already ran.
func RequirePermission(enforcer *permission.Enforcer, log logger.Interface, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("user_role")
		if role == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			log.Errorw("permission check failed", "error", err, "role", role, "resource", resource, "action", action)
			utils.ErrorResponse(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

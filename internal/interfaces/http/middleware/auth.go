package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"purser/internal/infrastructure/auth"
	"purser/internal/shared/logger"
	"purser/internal/shared/utils"
)

// AuthMiddleware authenticates requests with a JWT carried in a cookie or
// an Authorization header. The claims identify both the staff member and
// the agency every downstream query is scoped to.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid access token and places the
// caller's identity into the gin context for handlers and role checks.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			utils.ErrorResponse(c, 401, "authentication required")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Debugw("token verification failed", "error", err, "path", c.Request.URL.Path)
			utils.ErrorResponse(c, 401, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_sid", claims.UserSID)
		c.Set("agency_id", claims.AgencyID)
		c.Set("user_role", string(claims.Role))
		c.Next()
	}
}

// extractToken prefers the access_token cookie and falls back to a Bearer
// Authorization header.
func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// AgencyID returns the authenticated caller's agency id from the context.
func AgencyID(c *gin.Context) uint {
	v, ok := c.Get("agency_id")
	if !ok {
		return 0
	}
	agencyID, _ := v.(uint)
	return agencyID
}

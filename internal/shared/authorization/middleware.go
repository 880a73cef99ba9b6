package authorization

import (
	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects requests whose authenticated user is not an agency
// admin. It must run after the auth middleware has set user_role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString("user_role")
		if userRole != string(RoleAdmin) {
			c.JSON(403, gin.H{
				"error": "admin access required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CanAccessAgency reports whether a user belongs to the given agency. There is
// no cross-agency access, not even for admins.
func CanAccessAgency(userAgencyID, agencyID uint) bool {
	return userAgencyID != 0 && userAgencyID == agencyID
}

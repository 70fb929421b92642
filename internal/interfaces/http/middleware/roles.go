package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orderflow/backend/internal/domain/identity"
)

// RequireRoles aborts with 403 unless the authenticated account has one
// of the given roles. Must run after JWT authentication.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "Insufficient permissions for this operation",
				},
			})
			return
		}
		c.Next()
	}
}

// RequireOrderManager aborts unless the account may process any order
func RequireOrderManager() gin.HandlerFunc {
	return RequireRoles(identity.RoleInnkjoper, identity.RoleAdmin)
}

// RequireAdmin aborts unless the account is an admin
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin)
}

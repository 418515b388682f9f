package middlewares

import (
	"net/http"
	"slices"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/gin-gonic/gin"
)

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		identity, exists := CurrentIdentity(ctx)
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found in context", "code": "unauthenticated"})
			return
		}

		if !slices.Contains(roles, identity.Role) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Insufficient role for this operation", "code": "unauthorized"})
			return
		}

		ctx.Next()
	}
}

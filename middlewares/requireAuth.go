package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Kariqs/mobistore-api/services"
	"github.com/Kariqs/mobistore-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// IdentityResolver confirms that a user id taken from a credential belongs to
// an active account.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, userID uint) (*services.Identity, error)
}

// RequireAuth resolves the caller from a Bearer token. With trustHeader set,
// the user-id header is also accepted for clients that predate tokens.
func RequireAuth(resolver IdentityResolver, secret string, trustHeader bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := userIDFromRequest(ctx, secret, trustHeader)
		if !ok {
			abortUnauthenticated(ctx, "Authentication required")
			return
		}

		identity, err := resolver.ResolveIdentity(ctx.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				abortUnauthenticated(ctx, "Invalid user")
				return
			}
			zap.S().Errorw("identity resolution failed", "user_id", userID, "error", err)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error", "code": "internal_error"})
			return
		}

		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

func userIDFromRequest(ctx *gin.Context, secret string, trustHeader bool) (uint, bool) {
	if header := ctx.GetHeader("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			return 0, false
		}
		claims, err := utils.ParseJWT(strings.TrimSpace(token), secret)
		if err != nil {
			return 0, false
		}
		return claims.UserID, true
	}

	if trustHeader {
		id, err := strconv.ParseUint(ctx.GetHeader("user-id"), 10, 64)
		if err != nil || id == 0 {
			return 0, false
		}
		return uint(id), true
	}

	return 0, false
}

func abortUnauthenticated(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message, "code": "unauthenticated"})
}

// CurrentIdentity returns the caller set by RequireAuth.
func CurrentIdentity(ctx *gin.Context) (*services.Identity, bool) {
	v, exists := ctx.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*services.Identity)
	return identity, ok
}

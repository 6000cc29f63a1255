package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/users"
)

const userIDContextKey = "userID"

// BearerAuth verifies the Authorization header and stores the caller's user
// ID in the request context. Every protected route group runs behind it.
func BearerAuth(tokenService users.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			writeErrorCode(ctx, CodeAuthFailed, "missing bearer token")
			return
		}

		userID, err := tokenService.Verify(token)
		if err != nil {
			writeErrorCode(ctx, CodeAuthFailed, "invalid or expired token")
			return
		}

		ctx.Set(userIDContextKey, userID)
		ctx.Next()
	}
}

// currentUserID returns the authenticated caller's user ID set by BearerAuth.
func currentUserID(ctx *gin.Context) string {
	return ctx.GetString(userIDContextKey)
}

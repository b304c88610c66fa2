package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samadhan-cg/samadhan-api/internal/service"
)

// ContextClaimsKey holds the parsed token claims on the gin context.
const ContextClaimsKey = "auth_claims"

// Identify attaches token claims to the context when a valid bearer token is
// present. It never rejects: legacy dashboard builds call every endpoint
// unauthenticated.
func Identify(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := auth.ParseToken(strings.TrimSpace(token)); err == nil {
				c.Set(ContextClaimsKey, claims)
			}
		}
		c.Next()
	}
}

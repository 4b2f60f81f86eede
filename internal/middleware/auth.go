package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"soustackgw/internal/service"
)

const (
	ContextKeySubject = "subject"
	ContextKeyClaims  = "claims"
)

// AuthMiddleware returns Gin middleware that validates bearer tokens and
// injects the caller's claims.
func AuthMiddleware(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": gin.H{"code": "unauthorized", "message": "missing or invalid authorization header"},
			})
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"ok":    false,
				"error": gin.H{"code": "unauthorized", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeySubject, claims.Subject)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireToolScope rejects calls to a tool outside the token's scope. Requests
// without claims pass through.
func RequireToolScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(ContextKeyClaims)
		if !exists {
			c.Next()
			return
		}
		claims, ok := v.(*service.Claims)
		if ok && claims.Allows(c.Param("tool")) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"ok":    false,
			"error": gin.H{"code": "forbidden", "message": "token does not permit this tool"},
		})
	}
}

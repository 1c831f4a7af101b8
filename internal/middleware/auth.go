package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/hotel_rooms/internal/auth"
)

const claimsKey = "claims"

// OptionalAuth accepts requests without an Authorization header. A bearer
// token, when sent, must be valid; its claims are stored for the handlers.
func OptionalAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}
		claims, err := tokens.Parse(strings.TrimSpace(header[len("Bearer "):]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// Claims returns the verified token claims, if the request carried any.
func Claims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// AllowOwner reports whether the caller may act on rooms owned by email.
// Anonymous callers are allowed.
func AllowOwner(c *gin.Context, email string) bool {
	claims, ok := Claims(c)
	if !ok {
		return true
	}
	return strings.EqualFold(claims.Email, email)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kohei100802/28-LifePlanner/internal/auth"
	"github.com/Kohei100802/28-LifePlanner/internal/models"
)

// identityKey is the gin context key for the authenticated identity.
const identityKey = "identity"

// Identity extracts the authenticated identity from the request context.
// The second return is false if the request did not pass RequireAuth.
func Identity(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

// RequireAuth returns a middleware that validates session tokens and requires
// authentication. It extracts the token from the Authorization header,
// validates it, and stores the caller's identity in the request context.
// Requests without a valid token are rejected before any handler runs.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		// Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

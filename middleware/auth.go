package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rushali2005/studentpp/services"
)

const (
	ownerIDKey = "owner_id"
	emailKey   = "owner_email"
)

// RequireAuth resolves the bearer token to an owner id and stores it on the
// context. Requests without a valid token stop here with 401.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token",
				"kind":  services.KindAuthentication,
			})
			return
		}

		claims, err := authService.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
				"kind":  services.KindAuthentication,
			})
			return
		}

		c.Set(ownerIDKey, claims.UserID)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// OwnerID returns the authenticated owner, or "" outside RequireAuth.
func OwnerID(c *gin.Context) string {
	return c.GetString(ownerIDKey)
}

func OwnerEmail(c *gin.Context) string {
	return c.GetString(emailKey)
}

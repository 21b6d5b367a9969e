package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/auth"
)

// TokenVerifier is satisfied by *auth.Issuer.
type TokenVerifier interface {
	Verify(token string) error
}

// AdminCookie rejects requests without a valid admin session cookie.
func AdminCookie(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if err := verifier.Verify(tokenString); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			c.Abort()
			return
		}

		c.Set("admin", true)
		c.Next()
	}
}

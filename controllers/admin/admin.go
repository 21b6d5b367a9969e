package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/auth"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/seed"
	"github.com/maison-sac/storefront-api/store"
	"go.uber.org/zap"
)

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type CookieSettings struct {
	Name   string
	Secure bool
}

// Login checks the configured admin password and sets the session cookie.
func Login(issuer *auth.Issuer, password string, cookie CookieSettings, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
			return
		}
		if !auth.CheckPassword(password, req.Password) {
			logger.Warn("Failed admin login", zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, expires, err := issuer.Issue()
		if err != nil {
			logger.Error("Failed to issue admin token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, token, int(issuer.TTL().Seconds()), "/", "", cookie.Secure, true)
		c.JSON(http.StatusOK, gin.H{"expires_at": expires})
	}
}

func Logout(cookie CookieSettings) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// Migrate loads the launch catalog and journal into empty collections.
// Collections that already hold data are left untouched.
func Migrate(products *store.Collection[models.Product], posts *store.Collection[models.BlogPost], logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		seededProducts, err := products.SeedIfEmpty(ctx, seed.Products())
		if err != nil {
			logger.Error("Failed to seed products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed products"})
			return
		}
		seededPosts, err := posts.SeedIfEmpty(ctx, seed.BlogPosts())
		if err != nil {
			logger.Error("Failed to seed blog posts", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed blog posts"})
			return
		}

		logger.Info("Migration finished", zap.Bool("products", seededProducts), zap.Bool("blog", seededPosts))
		c.JSON(http.StatusOK, gin.H{
			"products_seeded": seededProducts,
			"blog_seeded":     seededPosts,
		})
	}
}

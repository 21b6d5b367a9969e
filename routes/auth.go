package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/maison-sac/storefront-api/controllers/admin"
)

func cookieSettings(d *Deps) adminController.CookieSettings {
	return adminController.CookieSettings{
		Name:   d.Config.Auth.CookieName,
		Secure: d.Config.Auth.SecureCookie,
	}
}

// SetupAuthRoutes registers the admin session endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, d *Deps) {
	api.POST("/admin/login", adminController.Login(d.Issuer, d.Config.Auth.AdminPassword, cookieSettings(d), d.Logger))
	api.POST("/admin/logout", adminController.Logout(cookieSettings(d)))
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/models"
)

// SetupConfigRoutes exposes the settings the storefront reads at startup.
// Only public values belong here; secrets stay server-side.
func SetupConfigRoutes(api *gin.RouterGroup, d *Deps) {
	public := models.StorefrontConfig{
		PaystackPublicKey: d.Config.Paystack.PublicKey,
		Currency:          d.Config.Paystack.Currency,
		AtelierEmail:      d.Config.Mail.AtelierEmail,
	}
	api.GET("/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, public)
	})
}

package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/maison-sac/storefront-api/controllers/order"
)

func SetupOrderRoutes(api *gin.RouterGroup, d *Deps) {
	// Best-effort copy of the order the shopper recorded locally
	api.POST("/orders", orderControllers.PlaceOrderHandler(d.Data.Orders, d.Data.Payments, d.Feed, d.Logger))
}

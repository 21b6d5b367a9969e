package routes

import (
	"github.com/gin-gonic/gin"
	requestControllers "github.com/maison-sac/storefront-api/controllers/request"
)

func SetupRequestRoutes(api *gin.RouterGroup, d *Deps) {
	requests := api.Group("/requests")
	{
		requests.POST("/custom-bag", requestControllers.SubmitCustomBag(d.Data.CustomBags, d.Logger))
		requests.POST("/repair", requestControllers.SubmitRepair(d.Data.Repairs, d.Logger))
	}
}

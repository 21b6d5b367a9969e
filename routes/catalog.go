package routes

import (
	"github.com/gin-gonic/gin"
	blogcontroller "github.com/maison-sac/storefront-api/controllers/blog"
	productcontroller "github.com/maison-sac/storefront-api/controllers/product"
)

func SetupCatalogRoutes(api *gin.RouterGroup, d *Deps) {
	api.GET("/products", productcontroller.GetProducts(d.Data.Products))
	api.GET("/products/:id", productcontroller.GetProductByID(d.Data.Products))

	api.GET("/blog", blogcontroller.GetPosts(d.Data.Blog))
	api.GET("/blog/:id", blogcontroller.GetPost(d.Data.Blog))
}

package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/maison-sac/storefront-api/controllers/admin"
	blogcontroller "github.com/maison-sac/storefront-api/controllers/blog"
	"github.com/maison-sac/storefront-api/controllers/crud"
	orderControllers "github.com/maison-sac/storefront-api/controllers/order"
	productcontroller "github.com/maison-sac/storefront-api/controllers/product"
	requestControllers "github.com/maison-sac/storefront-api/controllers/request"
	"github.com/maison-sac/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints behind the admin
// cookie gate.
func SetupAdminRoutes(api *gin.RouterGroup, d *Deps) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminCookie(d.Issuer, d.Config.Auth.CookieName))
	{
		adminGroup.POST("/migrate", adminController.Migrate(d.Data.Products, d.Data.Blog, d.Logger))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.GetProducts(d.Data.Products))
			productAdmin.POST("", productcontroller.CreateProduct(d.Data.Products))
			productAdmin.GET("/export", productcontroller.ExportProductsToExcel(d.Data.Products))
			productAdmin.POST("/import", productcontroller.ImportProductsFromExcel(d.Data.Products))
			productAdmin.GET("/:id", productcontroller.GetProductByID(d.Data.Products))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.Data.Products))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.Data.Products))
		}

		// ─────────── Blog ───────────
		blogAdmin := adminGroup.Group("/blog")
		{
			blogAdmin.GET("", blogcontroller.GetPosts(d.Data.Blog))
			blogAdmin.POST("", blogcontroller.CreatePost(d.Data.Blog))
			blogAdmin.GET("/:id", blogcontroller.GetPost(d.Data.Blog))
			blogAdmin.PUT("/:id", blogcontroller.UpdatePost(d.Data.Blog))
			blogAdmin.DELETE("/:id", blogcontroller.DeletePost(d.Data.Blog))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.Data.Orders))
			orderAdmin.GET("/ws", d.Feed.Handler())
			orderAdmin.GET("/:id", orderControllers.GetOrderByIDHandler(d.Data.Orders))
			orderAdmin.PUT("/:id", orderControllers.UpdateOrderStatusHandler(d.Data.Orders))
			orderAdmin.DELETE("/:id", orderControllers.DeleteOrderHandler(d.Data.Orders))
		}

		// ─────────── Service Requests ───────────
		bags := adminGroup.Group("/requests/custom-bag")
		{
			bags.GET("", requestControllers.ListCustomBag(d.Data.CustomBags))
			bags.GET("/:id", crud.Get(d.Data.CustomBags, "Request"))
			bags.PUT("/:id", requestControllers.UpdateCustomBag(d.Data.CustomBags))
			bags.DELETE("/:id", crud.Delete(d.Data.CustomBags, "Request"))
		}
		repairs := adminGroup.Group("/requests/repair")
		{
			repairs.GET("", requestControllers.ListRepair(d.Data.Repairs))
			repairs.GET("/:id", crud.Get(d.Data.Repairs, "Request"))
			repairs.PUT("/:id", requestControllers.UpdateRepair(d.Data.Repairs))
			repairs.DELETE("/:id", crud.Delete(d.Data.Repairs, "Request"))
		}
	}
}

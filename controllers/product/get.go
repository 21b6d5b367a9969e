package productcontroller

import (
	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
)

// GetProductByID returns a single product.
// URL param: /products/:id
func GetProductByID(products *store.Collection[models.Product]) gin.HandlerFunc {
	return crud.Get(products, "Product")
}

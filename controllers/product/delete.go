package productcontroller

import (
	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
)

func DeleteProduct(products *store.Collection[models.Product]) gin.HandlerFunc {
	return crud.Delete(products, "Product")
}

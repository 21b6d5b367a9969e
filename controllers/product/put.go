package productcontroller

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
)

// UpdateProduct merges the JSON body onto the stored product.
func UpdateProduct(products *store.Collection[models.Product]) gin.HandlerFunc {
	return crud.Merge(products, "Product", func(p *models.Product) error {
		if p.Price < 0 {
			return errors.New("price must not be negative")
		}
		p.UpdatedAt = time.Now().UTC()
		return nil
	})
}

package productcontroller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
)

// CreateProduct appends a product with the next free id.
func CreateProduct(products *store.Collection[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := c.ShouldBindJSON(&product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
			return
		}
		if strings.TrimSpace(product.Name) == "" || product.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and a non-negative price are required"})
			return
		}

		ctx := c.Request.Context()
		all, err := products.All(ctx)
		if err != nil {
			crud.Fail(c, "Product", err)
			return
		}

		now := time.Now().UTC()
		product.ID = nextID(all)
		if product.Slug == "" {
			product.Slug = crud.Slugify(product.Name)
		}
		product.CreatedAt = now
		product.UpdatedAt = now

		if err := products.ReplaceAll(ctx, append(all, product)); err != nil {
			crud.Fail(c, "Product", err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func nextID(all []models.Product) int {
	max := 0
	for _, p := range all {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

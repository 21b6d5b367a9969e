package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
)

// GetProducts lists the catalog. Optional filters: category, search
// (name or description, case-insensitive), featured, in_stock.
func GetProducts(products *store.Collection[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := strings.ToLower(strings.TrimSpace(c.Query("category")))
		search := strings.ToLower(strings.TrimSpace(c.Query("search")))

		featured, err := boolQuery(c, "featured")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid featured"})
			return
		}
		inStock, err := boolQuery(c, "in_stock")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid in_stock"})
			return
		}

		all, err := products.All(c.Request.Context())
		if err != nil {
			crud.Fail(c, "Product", err)
			return
		}

		filtered := make([]models.Product, 0, len(all))
		for _, p := range all {
			if category != "" && strings.ToLower(p.Category) != category {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(p.Name), search) &&
				!strings.Contains(strings.ToLower(p.Description), search) {
				continue
			}
			if featured != nil && p.Featured != *featured {
				continue
			}
			if inStock != nil && p.InStock != *inStock {
				continue
			}
			filtered = append(filtered, p)
		}
		c.JSON(http.StatusOK, filtered)
	}
}

func boolQuery(c *gin.Context, name string) (*bool, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

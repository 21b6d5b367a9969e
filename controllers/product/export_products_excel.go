package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Name", "Slug", "Description", "Price", "Category",
	"Images", "Sizes", "Colors", "Material", "InStock", "Featured",
	"CreatedAt", "UpdatedAt",
}

func ExportProductsToExcel(products *store.Collection[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := products.All(c.Request.Context())
		if err != nil {
			crud.Fail(c, "Product", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range exportHeaders {
			headerRow.AddCell().SetString(h)
		}

		for _, p := range all {
			row := sheet.AddRow()

			row.AddCell().SetString(strconv.Itoa(p.ID))
			row.AddCell().SetString(p.Name)
			row.AddCell().SetString(p.Slug)
			row.AddCell().SetString(p.Description)
			row.AddCell().SetString(strconv.FormatFloat(p.Price, 'f', -1, 64))
			row.AddCell().SetString(p.Category)
			row.AddCell().SetString(strings.Join(p.Images, ","))
			row.AddCell().SetString(strings.Join(p.Sizes, ","))
			row.AddCell().SetString(strings.Join(p.Colors, ","))
			row.AddCell().SetString(p.Material)
			row.AddCell().SetString(strconv.FormatBool(p.InStock))
			row.AddCell().SetString(strconv.FormatBool(p.Featured))
			row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			_ = c.Error(err)
			return
		}
	}
}

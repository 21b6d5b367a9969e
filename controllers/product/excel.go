package productcontroller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maison-sac/storefront-api/controllers/crud"
	"github.com/maison-sac/storefront-api/models"
	"github.com/maison-sac/storefront-api/store"
	"github.com/tealeg/xlsx"
)

// ImportProductsFromExcel upserts rows of the first sheet by id. Rows with
// an unknown or empty id are created with the next free id.
func ImportProductsFromExcel(products *store.Collection[models.Product]) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		ctx := c.Request.Context()
		all, err := products.All(ctx)
		if err != nil {
			crud.Fail(c, "Product", err)
			return
		}
		byID := make(map[int]int, len(all))
		for i, p := range all {
			byID[p.ID] = i
		}

		sheet := xlFile.Sheets[0]
		now := time.Now().UTC()
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]
			if row == nil || len(row.Cells) < 5 {
				skippedCount++
				continue
			}

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			name := get(1)
			price, err := strconv.ParseFloat(get(4), 64)
			if name == "" || err != nil || price < 0 {
				skippedCount++
				continue
			}

			product := models.Product{
				Name:        name,
				Slug:        get(2),
				Description: get(3),
				Price:       price,
				Category:    get(5),
				Images:      splitList(get(6)),
				Sizes:       splitList(get(7)),
				Colors:      splitList(get(8)),
				Material:    get(9),
				InStock:     parseBool(get(10), true),
				Featured:    parseBool(get(11), false),
				UpdatedAt:   now,
			}
			if product.Slug == "" {
				product.Slug = crud.Slugify(name)
			}

			if id, err := strconv.Atoi(get(0)); err == nil {
				if idx, ok := byID[id]; ok {
					product.ID = id
					product.CreatedAt = all[idx].CreatedAt
					all[idx] = product
					updatedCount++
					continue
				}
			}

			product.ID = nextID(all)
			product.CreatedAt = now
			byID[product.ID] = len(all)
			all = append(all, product)
			createdCount++
		}

		if createdCount+updatedCount > 0 {
			if err := products.ReplaceAll(ctx, all); err != nil {
				crud.Fail(c, "Product", err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

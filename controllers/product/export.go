package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

// GET /admin/products/export (admin)
// Streams the whole catalog as an xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Categories").Preload("User").Preload("Images").Find(&products).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		headers := []string{
			"ID", "Title", "Description", "Price", "Stock", "Active",
			"Owner", "OwnerEmail", "Categories", "MainImage", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()

			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Title)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Active)
			row.AddCell().SetValue(p.User.Name)
			row.AddCell().SetValue(p.User.Email)

			var slugs []string
			for _, cat := range p.Categories {
				slugs = append(slugs, cat.IDName)
			}
			row.AddCell().SetValue(strings.Join(slugs, ","))

			row.AddCell().SetValue(p.MainImageURL())
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to write Excel file")
			return
		}
	}
}

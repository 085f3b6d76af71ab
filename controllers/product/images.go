package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

type AddImageInput struct {
	URL   string `json:"url" binding:"required"`
	Key   string `json:"key" binding:"required"`
	Main  bool   `json:"main"`
	Order int    `json:"order" binding:"min=0"`
}

// POST /products/:id/images
// Flagging the new image as main clears the previous main first.
func AddProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		var input AddImageInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if input.Main {
			if err := db.Model(&models.ProductImage{}).
				Where("product_id = ? AND main = ?", product.ID, true).
				Update("main", false).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update main image")
				return
			}
		}

		image := models.ProductImage{
			ProductID: product.ID,
			URL:       input.URL,
			Key:       input.Key,
			Main:      input.Main,
			Order:     input.Order,
		}
		if err := db.Create(&image).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to add image")
			return
		}
		response.OK(c, http.StatusCreated, image, "Image added")
	}
}

// DELETE /products/:id/images/:image_id
func RemoveProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		var image models.ProductImage
		if err := db.Where("id = ? AND product_id = ?", c.Param("image_id"), product.ID).
			First(&image).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Image not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch image")
			return
		}

		if err := db.Delete(&image).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete image")
			return
		}
		response.OK(c, http.StatusOK, image, "Image removed")
	}
}

// PATCH /products/:id/images/:image_id/main
func SetMainImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		var image models.ProductImage
		if err := db.Where("id = ? AND product_id = ?", c.Param("image_id"), product.ID).
			First(&image).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Image not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch image")
			return
		}

		if err := db.Model(&models.ProductImage{}).
			Where("product_id = ? AND main = ?", product.ID, true).
			Update("main", false).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to clear main image")
			return
		}
		if err := db.Model(&image).Update("main", true).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to set main image")
			return
		}

		image.Main = true
		response.OK(c, http.StatusOK, image, "Main image updated")
	}
}

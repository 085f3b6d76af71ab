package productcontroller

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

var ErrNotOwner = errors.New("you do not have permission to modify this product")

type CreateProductInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Stock       *int    `json:"stock" binding:"required,min=0"`
	Active      *bool   `json:"active"`
	CategoryIDs []uint  `json:"category_ids" binding:"required,min=1,max=5"`
}

type UpdateProductInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
	Stock       *int     `json:"stock" binding:"omitempty,min=0"`
	Active      *bool    `json:"active"`
	CategoryIDs []uint   `json:"category_ids" binding:"omitempty,min=1,max=5"`
}

// POST /products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		categories, err := fetchCategories(db, input.CategoryIDs)
		if err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		active := true
		if input.Active != nil {
			active = *input.Active
		}

		product := models.Product{
			Title:       input.Title,
			Description: input.Description,
			Price:       input.Price,
			Stock:       *input.Stock,
			Active:      active,
			UserID:      c.GetString("user_id"),
			Categories:  categories,
		}
		if err := db.Create(&product).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create product")
			return
		}

		response.OK(c, http.StatusCreated, product, "Product created")
	}
}

// GET /products?page=&limit=
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := paginationParams(c)

		var total int64
		if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to count products")
			return
		}

		var products []models.Product
		if err := db.
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
			Preload("Categories").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		meta := response.Meta{
			Total:    total,
			Page:     page,
			LastPage: int(math.Ceil(float64(total) / float64(limit))),
		}
		response.OKWithMeta(c, http.StatusOK, products, meta, "Products retrieved")
	}
}

// GET /users/me/products?page=&limit=
func GetMyProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		page, limit := paginationParams(c)

		var total int64
		if err := db.Model(&models.Product{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to count products")
			return
		}

		var products []models.Product
		if err := db.
			Where("user_id = ?", userID).
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
			Preload("Categories").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		meta := response.Meta{
			Total:    total,
			Page:     page,
			LastPage: int(math.Ceil(float64(total) / float64(limit))),
		}
		response.OKWithMeta(c, http.StatusOK, products, meta, "Products retrieved")
	}
}

// GET /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
			Preload("Categories").
			First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Product not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch product")
			return
		}
		response.OK(c, http.StatusOK, product, "Product retrieved")
	}
}

// PATCH /products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}
		if input.Active != nil {
			updates["active"] = *input.Active
		}

		if len(updates) > 0 {
			if err := db.Model(product).Updates(updates).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update product")
				return
			}
		}

		if input.CategoryIDs != nil {
			categories, err := fetchCategories(db, input.CategoryIDs)
			if err != nil {
				response.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			if err := db.Model(product).Association("Categories").Replace(categories); err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update product categories")
				return
			}
		}

		var updated models.Product
		if err := db.
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("display_order ASC") }).
			Preload("Categories").
			First(&updated, "id = ?", product.ID).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch product")
			return
		}
		response.OK(c, http.StatusOK, updated, "Product updated")
	}
}

// DELETE /products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := ownedProduct(c, db)
		if !ok {
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(product).Association("Categories").Clear(); err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			return tx.Delete(product).Error
		})
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}
		response.OK(c, http.StatusOK, nil, "Product deleted")
	}
}

// ownedProduct loads the product in the :id param and rejects the request
// unless the authenticated user owns it.
func ownedProduct(c *gin.Context, db *gorm.DB) (*models.Product, bool) {
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
			return nil, false
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch product")
		return nil, false
	}

	if product.UserID != c.GetString("user_id") {
		response.Error(c, http.StatusBadRequest, ErrNotOwner.Error())
		return nil, false
	}
	return &product, true
}

// fetchCategories resolves category ids and ensures all of them exist.
func fetchCategories(db *gorm.DB, ids []uint) ([]models.Category, error) {
	var categories []models.Category
	if err := db.Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, errors.New("failed to fetch categories")
	}
	if len(categories) != len(ids) {
		return nil, errors.New("one or more categories do not exist")
	}
	return categories, nil
}

func paginationParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

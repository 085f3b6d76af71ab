package productcontroller

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

var (
	ErrLevelOneWithParent  = errors.New("level 1 categories cannot have a parent")
	ErrMissingParent       = errors.New("level 2 and 3 categories must have a parent")
	ErrParentNotFound      = errors.New("parent category not found")
	ErrParentLevel         = errors.New("category level must be greater than its parent's level")
	ErrDuplicateSlug       = errors.New("a category with a similar name already exists")
	ErrCategoryHasChildren = errors.New("cannot delete a category that has subcategories")
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

type CreateCategoryInput struct {
	Name     string `json:"name" binding:"required"`
	Level    int    `json:"level" binding:"required,min=1,max=3"`
	ParentID *uint  `json:"parent_id"`
}

type UpdateCategoryInput struct {
	Name     *string `json:"name"`
	Level    *int    `json:"level" binding:"omitempty,min=1,max=3"`
	ParentID *uint   `json:"parent_id"`
}

// Slugify lowercases the name, strips diacritics and collapses everything
// else into hyphens.
func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, name); err == nil {
		name = stripped
	}
	slug := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// ValidateHierarchy enforces the three-level tree: level 1 has no parent,
// deeper levels need a parent with a strictly lower level.
func ValidateHierarchy(db *gorm.DB, level int, parentID *uint) error {
	if level == 1 && parentID != nil {
		return ErrLevelOneWithParent
	}
	if level > 1 && parentID == nil {
		return ErrMissingParent
	}

	if parentID != nil {
		var parent models.Category
		if err := db.First(&parent, "id = ?", *parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			return err
		}
		if parent.Level >= level {
			return ErrParentLevel
		}
	}
	return nil
}

// CreateCategoryRecord validates the hierarchy and the derived slug, then
// inserts the row.
func CreateCategoryRecord(db *gorm.DB, name string, level int, parentID *uint) (*models.Category, error) {
	if err := ValidateHierarchy(db, level, parentID); err != nil {
		return nil, err
	}

	idName := Slugify(name)
	var existing models.Category
	err := db.Where("id_name = ?", idName).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateSlug
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := models.Category{
		Name:     name,
		IDName:   idName,
		Level:    level,
		ParentID: parentID,
	}
	if err := db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategoryRecord refuses to remove a category that still has
// children.
func DeleteCategoryRecord(db *gorm.DB, id uint) error {
	var category models.Category
	if err := db.Preload("Children").First(&category, "id = ?", id).Error; err != nil {
		return err
	}
	if len(category.Children) > 0 {
		return ErrCategoryHasChildren
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&category).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

// POST /categories (admin)
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		category, err := CreateCategoryRecord(db, input.Name, input.Level, input.ParentID)
		if err != nil {
			respondCategoryError(c, err)
			return
		}
		response.OK(c, http.StatusCreated, category, "Category created")
	}
}

// GET /categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Preload("Parent").Preload("Children").
			Order("level ASC, name ASC").
			Find(&categories).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		response.OK(c, http.StatusOK, categories, "Categories retrieved")
	}
}

// GET /categories/:id
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.Preload("Parent").Preload("Children").
			First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Category not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch category")
			return
		}
		response.OK(c, http.StatusOK, category, "Category retrieved")
	}
}

// PATCH /categories/:id (admin)
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Category not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch category")
			return
		}

		var input UpdateCategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		if input.Level != nil {
			if err := ValidateHierarchy(db, *input.Level, input.ParentID); err != nil {
				respondCategoryError(c, err)
				return
			}
			category.Level = *input.Level
			category.ParentID = input.ParentID
		}
		if input.Name != nil {
			idName := Slugify(*input.Name)
			var existing models.Category
			err := db.Where("id_name = ? AND id != ?", idName, category.ID).First(&existing).Error
			if err == nil {
				respondCategoryError(c, ErrDuplicateSlug)
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusInternalServerError, "Failed to check category name")
				return
			}
			category.Name = *input.Name
			category.IDName = idName
		}

		if err := db.Save(&category).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update category")
			return
		}
		response.OK(c, http.StatusOK, category, "Category updated")
	}
}

// DELETE /categories/:id (admin)
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "Category not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch category")
			return
		}

		if err := DeleteCategoryRecord(db, category.ID); err != nil {
			respondCategoryError(c, err)
			return
		}
		response.OK(c, http.StatusOK, nil, "Category deleted")
	}
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrParentNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrLevelOneWithParent),
		errors.Is(err, ErrMissingParent),
		errors.Is(err, ErrParentLevel),
		errors.Is(err, ErrDuplicateSlug),
		errors.Is(err, ErrCategoryHasChildren):
		response.Error(c, http.StatusBadRequest, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process category")
	}
}

package productcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MartinB1989/partners-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
	))
	return db
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Electrónica":            "electronica",
		"Ropa & Accesorios":      "ropa-accesorios",
		"  Frutas  y Verduras  ": "frutas-y-verduras",
		"Bebés":                  "bebes",
		"CAFÉ":                   "cafe",
		"a--b":                   "a-b",
	}
	for name, want := range cases {
		assert.Equal(t, want, Slugify(name), "Slugify(%q)", name)
	}
}

func TestValidateHierarchy(t *testing.T) {
	db := setupTestDB(t)

	root, err := CreateCategoryRecord(db, "Alimentación", 1, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, ValidateHierarchy(db, 1, &root.ID), ErrLevelOneWithParent)
	assert.ErrorIs(t, ValidateHierarchy(db, 2, nil), ErrMissingParent)

	missing := uint(999)
	assert.ErrorIs(t, ValidateHierarchy(db, 2, &missing), ErrParentNotFound)

	// The parent's level must be strictly lower.
	child, err := CreateCategoryRecord(db, "Lácteos", 2, &root.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, ValidateHierarchy(db, 2, &child.ID), ErrParentLevel)
	assert.NoError(t, ValidateHierarchy(db, 3, &child.ID))
}

func TestCreateCategoryRejectsDuplicateSlug(t *testing.T) {
	db := setupTestDB(t)

	_, err := CreateCategoryRecord(db, "Electrónica", 1, nil)
	require.NoError(t, err)

	// Different spelling, same slug.
	_, err = CreateCategoryRecord(db, "electronica", 1, nil)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestDeleteCategoryBlockedByChildren(t *testing.T) {
	db := setupTestDB(t)

	root, err := CreateCategoryRecord(db, "Alimentación", 1, nil)
	require.NoError(t, err)
	child, err := CreateCategoryRecord(db, "Lácteos", 2, &root.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteCategoryRecord(db, root.ID), ErrCategoryHasChildren)

	// Leaf first, then the root goes through.
	require.NoError(t, DeleteCategoryRecord(db, child.ID))
	require.NoError(t, DeleteCategoryRecord(db, root.ID))

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteCategoryClearsProductAssociations(t *testing.T) {
	db := setupTestDB(t)

	category, err := CreateCategoryRecord(db, "Miel", 1, nil)
	require.NoError(t, err)

	product := models.Product{Title: "Miel de romero", Price: 8.50, Stock: 10, Active: true, UserID: "seller-1"}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Model(&product).Association("Categories").Append(category))

	require.NoError(t, DeleteCategoryRecord(db, category.ID))

	// The product survives, just uncategorized.
	var reloaded models.Product
	require.NoError(t, db.Preload("Categories").First(&reloaded, product.ID).Error)
	assert.Empty(t, reloaded.Categories)
}

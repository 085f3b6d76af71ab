package productcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MartinB1989/partners-api/models"
)

func TestInactiveProductSurvivesInsert(t *testing.T) {
	db := setupTestDB(t)

	product := models.Product{
		Title:  "Vino retirado",
		Price:  20,
		Stock:  5,
		Active: false,
		UserID: "seller-1",
	}
	require.NoError(t, db.Create(&product).Error)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, product.ID).Error)
	assert.False(t, reloaded.Active)
}

func TestCreateProductRespectsActiveFlag(t *testing.T) {
	db := setupTestDB(t)
	category, err := CreateCategoryRecord(db, "Bebidas", 1, nil)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/products", func(c *gin.Context) {
		c.Set("user_id", "seller-1")
		c.Next()
	}, CreateProduct(db))

	post := func(body gin.H) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := post(gin.H{
		"title":        "Vino nuevo",
		"description":  "Aún sin publicar",
		"price":        20,
		"stock":        5,
		"active":       false,
		"category_ids": []uint{category.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var inactive models.Product
	require.NoError(t, db.Where("title = ?", "Vino nuevo").First(&inactive).Error)
	assert.False(t, inactive.Active)

	// Omitting the flag still defaults to active.
	w = post(gin.H{
		"title":        "Vino publicado",
		"description":  "Disponible",
		"price":        18,
		"stock":        5,
		"category_ids": []uint{category.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var active models.Product
	require.NoError(t, db.Where("title = ?", "Vino publicado").First(&active).Error)
	assert.True(t, active.Active)
}

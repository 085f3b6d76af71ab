package pickupControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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

	require.NoError(t, db.AutoMigrate(&models.PickupAddress{}))
	return db
}

func setupRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/pickup-addresses", CreatePickupAddress(db))
	r.GET("/pickup-addresses/:id", GetPickupAddress(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePickupAddressRespectsIsActiveFlag(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db, "producer-1")

	w := postJSON(t, r, "/pickup-addresses", gin.H{
		"name":      "Nave del polígono",
		"street":    "Calle Industria",
		"number":    "4",
		"city":      "Valencia",
		"state":     "Valencia",
		"zip_code":  "46001",
		"is_active": false,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var inactive models.PickupAddress
	require.NoError(t, db.Where("name = ?", "Nave del polígono").First(&inactive).Error)
	assert.False(t, inactive.IsActive)
	assert.Equal(t, "España", inactive.Country)

	// Omitting the flag defaults to active.
	w = postJSON(t, r, "/pickup-addresses", gin.H{
		"name":     "Puesto del mercado",
		"street":   "Plaza Mayor",
		"number":   "1",
		"city":     "Valencia",
		"state":    "Valencia",
		"zip_code": "46002",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var active models.PickupAddress
	require.NoError(t, db.Where("name = ?", "Puesto del mercado").First(&active).Error)
	assert.True(t, active.IsActive)
}

func TestPickupAddressScopedToOwner(t *testing.T) {
	db := setupTestDB(t)

	address := models.PickupAddress{
		UserID:   "producer-1",
		Name:     "Nave del polígono",
		Street:   "Calle Industria",
		Number:   "4",
		City:     "Valencia",
		State:    "Valencia",
		ZipCode:  "46001",
		Country:  "España",
		IsActive: true,
	}
	require.NoError(t, db.Create(&address).Error)

	owner := setupRouter(db, "producer-1")
	stranger := setupRouter(db, "producer-2")

	req := httptest.NewRequest(http.MethodGet, "/pickup-addresses/1", nil)
	w := httptest.NewRecorder()
	owner.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/pickup-addresses/1", nil)
	w = httptest.NewRecorder()
	stranger.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

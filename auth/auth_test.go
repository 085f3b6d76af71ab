package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
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

	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", Register(db, nil))
	r.POST("/auth/login", Login(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIssueTokenClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := IssueToken("user-1", "ana@example.com")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.NotZero(t, claims["exp"])
}

func TestRegisterAssignsCustomerRoleByDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(t, r, "/auth/register", gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "supersecreta",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "ana@example.com").First(&user).Error)
	assert.Equal(t, []models.Role{models.RoleCustomer}, user.Roles)
	assert.NotEqual(t, "supersecreta", user.Password)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := setupRouter(db)

	body := gin.H{"name": "Ana", "email": "ana@example.com", "password": "supersecreta"}
	assert.Equal(t, http.StatusCreated, postJSON(t, r, "/auth/register", body).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, r, "/auth/register", body).Code)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := setupRouter(db)

	postJSON(t, r, "/auth/register", gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"password": "supersecreta",
	})

	w := postJSON(t, r, "/auth/login", gin.H{"email": "ana@example.com", "password": "supersecreta"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.Token)

	w = postJSON(t, r, "/auth/login", gin.H{"email": "ana@example.com", "password": "incorrecta"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, r, "/auth/login", gin.H{"email": "nadie@example.com", "password": "supersecreta"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

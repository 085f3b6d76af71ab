package cartControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

type CreateAddressInput struct {
	Street  string `json:"street" binding:"required"`
	Number  string `json:"number" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	ZipCode string `json:"zip_code" binding:"required"`
	Country string `json:"country"`
}

func (in *CreateAddressInput) toModel(userID *string) models.Address {
	country := in.Country
	if country == "" {
		country = "España"
	}
	return models.Address{
		Street:  in.Street,
		Number:  in.Number,
		City:    in.City,
		State:   in.State,
		ZipCode: in.ZipCode,
		Country: country,
		UserID:  userID,
	}
}

// POST /carts/addresses
// The address is always bound to the authenticated user.
func CreateUserAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		userID := c.GetString("user_id")
		address := input.toModel(&userID)
		if err := db.Create(&address).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create address")
			return
		}
		response.OK(c, http.StatusCreated, address, "Address created")
	}
}

// POST /carts/anonymous/addresses
func CreateAnonymousAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		address := input.toModel(nil)
		if err := db.Create(&address).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create address")
			return
		}
		response.OK(c, http.StatusCreated, address, "Address created")
	}
}

// GET /carts/addresses
func GetUserAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addresses []models.Address
		if err := db.Where("user_id = ?", c.GetString("user_id")).
			Order("created_at DESC").Find(&addresses).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch addresses")
			return
		}
		response.OK(c, http.StatusOK, addresses, "Addresses retrieved")
	}
}

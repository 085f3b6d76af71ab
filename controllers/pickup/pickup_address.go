package pickupControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

// Pickup addresses are the locations where a producer hands products to
// buyers. Every operation is scoped to the authenticated owner: lookups
// filter by (id, user_id) and a miss is a plain 404.

type CreatePickupAddressInput struct {
	Name           string   `json:"name" binding:"required"`
	Street         string   `json:"street" binding:"required"`
	Number         string   `json:"number" binding:"required"`
	City           string   `json:"city" binding:"required"`
	State          string   `json:"state" binding:"required"`
	ZipCode        string   `json:"zip_code" binding:"required"`
	Country        string   `json:"country"`
	AdditionalInfo string   `json:"additional_info"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	IsActive       *bool    `json:"is_active"`
}

type UpdatePickupAddressInput struct {
	Name           *string  `json:"name"`
	Street         *string  `json:"street"`
	Number         *string  `json:"number"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	ZipCode        *string  `json:"zip_code"`
	Country        *string  `json:"country"`
	AdditionalInfo *string  `json:"additional_info"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	IsActive       *bool    `json:"is_active"`
}

// POST /pickup-addresses
func CreatePickupAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreatePickupAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		country := input.Country
		if country == "" {
			country = "España"
		}
		isActive := true
		if input.IsActive != nil {
			isActive = *input.IsActive
		}

		address := models.PickupAddress{
			UserID:         c.GetString("user_id"),
			Name:           input.Name,
			Street:         input.Street,
			Number:         input.Number,
			City:           input.City,
			State:          input.State,
			ZipCode:        input.ZipCode,
			Country:        country,
			AdditionalInfo: input.AdditionalInfo,
			Latitude:       input.Latitude,
			Longitude:      input.Longitude,
			IsActive:       isActive,
		}
		if err := db.Create(&address).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create pickup address")
			return
		}
		response.OK(c, http.StatusCreated, address, "Pickup address created")
	}
}

// GET /pickup-addresses
func GetPickupAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addresses []models.PickupAddress
		if err := db.Where("user_id = ?", c.GetString("user_id")).
			Order("created_at DESC").Find(&addresses).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch pickup addresses")
			return
		}
		response.OK(c, http.StatusOK, addresses, "Pickup addresses retrieved")
	}
}

// GET /pickup-addresses/:id
func GetPickupAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, ok := ownedPickupAddress(c, db)
		if !ok {
			return
		}
		response.OK(c, http.StatusOK, address, "Pickup address retrieved")
	}
}

// PATCH /pickup-addresses/:id
func UpdatePickupAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, ok := ownedPickupAddress(c, db)
		if !ok {
			return
		}

		var input UpdatePickupAddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Street != nil {
			updates["street"] = *input.Street
		}
		if input.Number != nil {
			updates["number"] = *input.Number
		}
		if input.City != nil {
			updates["city"] = *input.City
		}
		if input.State != nil {
			updates["state"] = *input.State
		}
		if input.ZipCode != nil {
			updates["zip_code"] = *input.ZipCode
		}
		if input.Country != nil {
			updates["country"] = *input.Country
		}
		if input.AdditionalInfo != nil {
			updates["additional_info"] = *input.AdditionalInfo
		}
		if input.Latitude != nil {
			updates["latitude"] = *input.Latitude
		}
		if input.Longitude != nil {
			updates["longitude"] = *input.Longitude
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}

		if len(updates) > 0 {
			if err := db.Model(address).Updates(updates).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update pickup address")
				return
			}
		}
		response.OK(c, http.StatusOK, address, "Pickup address updated")
	}
}

// DELETE /pickup-addresses/:id
func DeletePickupAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		address, ok := ownedPickupAddress(c, db)
		if !ok {
			return
		}
		if err := db.Delete(address).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete pickup address")
			return
		}
		response.OK(c, http.StatusOK, nil, "Pickup address deleted")
	}
}

func ownedPickupAddress(c *gin.Context, db *gorm.DB) (*models.PickupAddress, bool) {
	var address models.PickupAddress
	err := db.Where("id = ? AND user_id = ?", c.Param("id"), c.GetString("user_id")).
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "Pickup address not found")
			return nil, false
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch pickup address")
		return nil, false
	}
	return &address, true
}

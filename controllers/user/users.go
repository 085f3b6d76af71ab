package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

type UpdateUserInput struct {
	Name     *string `json:"name"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// GET /users/me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}
		response.OK(c, http.StatusOK, user, "User retrieved")
	}
}

// PATCH /users/me
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.GetString("user_id")).Error; err != nil {
			response.Error(c, http.StatusNotFound, "User not found")
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to hash password")
				return
			}
			updates["password"] = string(hash)
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to update user")
				return
			}
		}
		response.OK(c, http.StatusOK, user, "User updated")
	}
}

// GET /users (admin)
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		response.OK(c, http.StatusOK, users, "Users retrieved")
	}
}

// DELETE /users/:id (admin)
func DeleteUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Error(c, http.StatusNotFound, "User not found")
				return
			}
			response.Error(c, http.StatusInternalServerError, "Failed to fetch user")
			return
		}

		if err := db.Delete(&user).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to delete user")
			return
		}
		response.OK(c, http.StatusOK, nil, "User deleted")
	}
}

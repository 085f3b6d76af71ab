package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/aws"
	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

const tokenTTL = 7 * 24 * time.Hour

type RegisterInput struct {
	Name     string        `json:"name" binding:"required"`
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required,min=8"`
	Roles    []models.Role `json:"roles"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/register
func Register(db *gorm.DB, mailer *aws.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			response.Error(c, http.StatusConflict, "Email is already registered")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusInternalServerError, "Failed to check email")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		roles := input.Roles
		if len(roles) == 0 {
			roles = []models.Role{models.RoleCustomer}
		}

		user := models.User{
			ID:       uuid.NewString(),
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hash),
			Roles:    roles,
		}
		if err := db.Create(&user).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to create user")
			return
		}

		// Welcome email is best-effort; registration never fails on it.
		if mailer != nil {
			go func(name, email string) {
				subject, html, text := welcomeEmail(name)
				if err := mailer.Send(context.Background(), email, subject, html, text); err != nil {
					log.Printf("❌ Failed to send welcome email to %s: %v", email, err)
				}
			}(user.Name, user.Email)
		}

		token, err := IssueToken(user.ID, user.Email)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		response.OK(c, http.StatusCreated, gin.H{"user": user, "token": token}, "User registered")
	}
}

// POST /auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := IssueToken(user.ID, user.Email)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Token generation failed")
			return
		}

		response.OK(c, http.StatusOK, gin.H{"user": user, "token": token}, "Logged in")
	}
}

// IssueToken signs an HS256 token carrying the user id and email.
func IssueToken(userID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

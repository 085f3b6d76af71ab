package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/models"
	"github.com/MartinB1989/partners-api/response"
)

// ValidateToken requires a valid bearer token and stores the user id in the
// context under "user_id".
func ValidateToken(c *gin.Context) {
	userID, err := userIDFromHeader(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, err.Error())
		return
	}
	c.Set("user_id", userID)
	c.Next()
}

// OptionalToken extracts the user id when a valid token is present and
// continues silently otherwise. Used on routes that serve both
// authenticated and anonymous shoppers.
func OptionalToken(c *gin.Context) {
	if userID, err := userIDFromHeader(c); err == nil {
		c.Set("user_id", userID)
	}
	c.Next()
}

// RequireRoles loads the authenticated user and rejects the request unless
// it carries one of the given roles. Must run after ValidateToken.
func RequireRoles(db *gorm.DB, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userIDVal).Error; err != nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if !user.HasRole(roles...) {
			response.Error(c, http.StatusForbidden, "You do not have permission to access this resource")
			return
		}

		c.Next()
	}
}

func userIDFromHeader(c *gin.Context) (string, error) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		return "", errors.New("Authorization header is missing")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("Invalid token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("Invalid token claims")
	}
	return sub, nil
}

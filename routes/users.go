package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	userControllers "github.com/MartinB1989/partners-api/controllers/user"
	"github.com/MartinB1989/partners-api/middleware"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	users := r.Group("/users")
	users.Use(middleware.ValidateToken)
	{
		users.GET("/me", userControllers.GetMe(db))
		users.PATCH("/me", userControllers.UpdateMe(db))
	}
}

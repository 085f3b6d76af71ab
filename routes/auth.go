package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/auth"
	"github.com/MartinB1989/partners-api/aws"
)

func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, mailer *aws.Mailer) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db, mailer))
		authGroup.POST("/login", auth.Login(db))
	}
}

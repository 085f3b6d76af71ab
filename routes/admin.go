package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/MartinB1989/partners-api/controllers/order"
	productcontroller "github.com/MartinB1989/partners-api/controllers/product"
	userControllers "github.com/MartinB1989/partners-api/controllers/user"
	"github.com/MartinB1989/partners-api/middleware"
	"github.com/MartinB1989/partners-api/models"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateToken, middleware.RequireRoles(db, models.RoleAdmin))
	{
		admin.GET("/users", userControllers.GetAllUsers(db))
		admin.DELETE("/users/:id", userControllers.DeleteUser(db))

		admin.GET("/orders", orderControllers.GetAllOrders(db))
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)

		admin.POST("/categories", productcontroller.CreateCategory(db))
		admin.PATCH("/categories/:id", productcontroller.UpdateCategory(db))
		admin.DELETE("/categories/:id", productcontroller.DeleteCategory(db))

		admin.GET("/products/export", productcontroller.ExportProductsToExcel(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/MartinB1989/partners-api/controllers/order"
	"github.com/MartinB1989/partners-api/middleware"
)

// Order placement is open to guests: the token is optional and checkout
// identity comes from the request body.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.OptionalToken)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db))
		orders.GET("/:id", orderControllers.GetOrderByID(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/MartinB1989/partners-api/controllers/cart"
	"github.com/MartinB1989/partners-api/middleware"
)

func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	carts := r.Group("/carts")

	// Anonymous channel, keyed by the cart_session_id cookie.
	anonymous := carts.Group("/anonymous")
	{
		anonymous.GET("", cartControllers.GetAnonymousCart(db))
		anonymous.PATCH("", cartControllers.UpdateAnonymousCart(db))
		anonymous.POST("/items", cartControllers.AddItemToAnonymousCart(db))
		anonymous.PATCH("/items/:product_id", cartControllers.UpdateAnonymousItemQuantity(db))
		anonymous.DELETE("/items/:product_id", cartControllers.RemoveAnonymousItem(db))
		anonymous.DELETE("/clear", cartControllers.ClearAnonymousCart(db))
		anonymous.POST("/addresses", cartControllers.CreateAnonymousAddress(db))
	}

	// Authenticated channel, keyed by the JWT subject.
	authed := carts.Group("")
	authed.Use(middleware.ValidateToken)
	{
		authed.GET("", cartControllers.GetUserCart(db))
		authed.PATCH("", cartControllers.UpdateUserCart(db))
		authed.POST("/items", cartControllers.AddItemToUserCart(db))
		authed.PATCH("/items/:product_id", cartControllers.UpdateUserItemQuantity(db))
		authed.DELETE("/items/:product_id", cartControllers.RemoveUserItem(db))
		authed.DELETE("/clear", cartControllers.ClearUserCart(db))
		authed.POST("/transfer", cartControllers.TransferCart(db))
		authed.POST("/addresses", cartControllers.CreateUserAddress(db))
		authed.GET("/addresses", cartControllers.GetUserAddresses(db))
	}
}

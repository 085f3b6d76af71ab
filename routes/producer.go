package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/aws"
	pickupControllers "github.com/MartinB1989/partners-api/controllers/pickup"
	productcontroller "github.com/MartinB1989/partners-api/controllers/product"
	uploadControllers "github.com/MartinB1989/partners-api/controllers/upload"
	"github.com/MartinB1989/partners-api/middleware"
	"github.com/MartinB1989/partners-api/models"
)

// SetupProducerRoutes wires everything a vendor needs to run their storefront:
// product and image management, pickup addresses and presigned uploads.
func SetupProducerRoutes(r *gin.Engine, db *gorm.DB, s3 *aws.S3) {
	producer := r.Group("")
	producer.Use(middleware.ValidateToken, middleware.RequireRoles(db, models.RoleProducer, models.RoleAdmin))
	{
		producer.POST("/products", productcontroller.CreateProduct(db))
		producer.PATCH("/products/:id", productcontroller.UpdateProduct(db))
		producer.DELETE("/products/:id", productcontroller.DeleteProduct(db))
		producer.POST("/products/:id/images", productcontroller.AddProductImage(db))
		producer.DELETE("/products/:id/images/:image_id", productcontroller.RemoveProductImage(db))
		producer.PATCH("/products/:id/images/:image_id/main", productcontroller.SetMainImage(db))

		// "mine" would collide with the public /products/:id wildcard,
		// so the producer's own listing hangs off /users/me instead.
		producer.GET("/users/me/products", productcontroller.GetMyProducts(db))

		producer.POST("/pickup-addresses", pickupControllers.CreatePickupAddress(db))
		producer.GET("/pickup-addresses", pickupControllers.GetPickupAddresses(db))
		producer.GET("/pickup-addresses/:id", pickupControllers.GetPickupAddress(db))
		producer.PATCH("/pickup-addresses/:id", pickupControllers.UpdatePickupAddress(db))
		producer.DELETE("/pickup-addresses/:id", pickupControllers.DeletePickupAddress(db))

		if s3 != nil {
			producer.POST("/uploads/presign", uploadControllers.PresignUpload(s3))
			producer.POST("/uploads/presign-delete", uploadControllers.PresignDelete(s3))
		}
	}
}

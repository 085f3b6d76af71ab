package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MartinB1989/partners-api/aws"
)

// SetupRoutes is the single entry point that wires every route group. The
// S3 client and mailer may be nil when the AWS env vars are absent; the
// routes that need them are skipped or degrade accordingly.
func SetupRoutes(r *gin.Engine, db *gorm.DB, s3 *aws.S3, mailer *aws.Mailer) {
	SetupAuthRoutes(r, db, mailer)
	SetupUserRoutes(r, db)
	SetupCatalogRoutes(r, db)
	SetupCartRoutes(r, db)
	SetupOrderRoutes(r, db)
	SetupProducerRoutes(r, db, s3)
	SetupAdminRoutes(r, db)
}

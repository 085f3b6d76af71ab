package uploadControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinB1989/partners-api/aws"
	"github.com/MartinB1989/partners-api/response"
)

// Clients upload images straight to S3; these endpoints only hand out the
// presigned credentials.

type PresignUploadInput struct {
	FileExtension string `json:"file_extension" binding:"required,oneof=jpg jpeg png webp"`
	ContentType   string `json:"content_type" binding:"required,oneof=image/jpeg image/png image/webp"`
}

type PresignDeleteInput struct {
	Key string `json:"key" binding:"required"`
}

// POST /uploads/presign
func PresignUpload(s3 *aws.S3) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PresignUploadInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		upload, err := s3.PresignUpload(c.Request.Context(), input.FileExtension, input.ContentType)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to generate upload URL")
			return
		}
		response.OK(c, http.StatusCreated, upload, "Upload URL generated")
	}
}

// POST /uploads/presign-delete
func PresignDelete(s3 *aws.S3) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PresignDeleteInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		url, err := s3.PresignDelete(c.Request.Context(), input.Key)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to generate delete URL")
			return
		}
		response.OK(c, http.StatusOK, gin.H{"presignedUrl": url}, "Delete URL generated")
	}
}

// Package response renders the API's JSON envelopes. Every success body is
// {success, data, message} (plus meta on paginated lists); every failure is
// {success, statusCode, message, error, timestamp, path}.
package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

func OK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

func OKWithMeta(c *gin.Context, status int, data interface{}, meta Meta, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"meta":    meta,
		"message": message,
	})
}

func Error(c *gin.Context, status int, message string) {
	ErrorWithDetail(c, status, message, gin.H{})
}

func ErrorWithDetail(c *gin.Context, status int, message string, detail interface{}) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"statusCode": status,
		"message":    message,
		"error":      detail,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"path":       c.Request.URL.Path,
	})
}

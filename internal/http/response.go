package http

import "github.com/gin-gonic/gin"

func successResponse(c *gin.Context, status int, data interface{}, message string) {
	body := gin.H{"data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

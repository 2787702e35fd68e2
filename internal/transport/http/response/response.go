package response

import "github.com/gin-gonic/gin"

// Err 统一的错误体 {"error": msg}，状态码按 HTTP 语义给
func Err(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// AbortErr 中间件链里用，阻止后续 handler
func AbortErr(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

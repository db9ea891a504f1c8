package server

import "github.com/gin-gonic/gin"

// RespondError writes a JSON error and aborts the handler chain, so later
// handlers never run even if the caller forgets to return
func RespondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

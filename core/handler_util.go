package core

import "github.com/gin-gonic/gin"

// Client-facing messages. They never say which field was wrong.
const (
	msgInvalidFormat       = "Invalid username or password format"
	msgInvalidCredentials  = "Incorrect username or password"
	msgInternalServerError = "Internal server error"
	msgForbidden           = "Forbidden"
)

// respondError sends a plaintext error body.
func respondError(c *gin.Context, status int, message string) {
	c.String(status, message)
}

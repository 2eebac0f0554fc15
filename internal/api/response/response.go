package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every response body is a flat JSON object carrying a "message" field
// with an outcome keyword on success or a human-readable string on
// failure. Callers of the API match on that field; there is no separate
// machine-readable error code.

// Success writes a 200 response with the given outcome keyword merged
// with any extra payload fields.
func Success(c *gin.Context, message string, extras gin.H) {
	body := gin.H{"message": message}
	for k, v := range extras {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Messages writes a 200 response carrying a list of outcome keywords,
// one per applied change.
func Messages(c *gin.Context, messages []string) {
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// Error writes an error response with a human-readable message.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// AbortError writes an error response and prevents any later handler
// in the chain from running. Used by middleware.
func AbortError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

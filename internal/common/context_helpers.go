// File: internal/common/context_helpers.go
package common

import (
	"github.com/gin-gonic/gin"
)

// GetBrowserIDFromContext retrieves the browser identifier set by the browser identity middleware.
// Returns an empty string if not found.
func GetBrowserIDFromContext(c *gin.Context) string {
	val, exists := c.Get(BrowserIDKey)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

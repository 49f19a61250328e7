// Package respond centralizes JSON response writing so handlers stay thin.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response. Pipeline endpoints use this even for
// partial results; failure detail travels inside the body.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

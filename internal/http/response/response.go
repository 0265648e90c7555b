// Package response provides small JSON response helpers shared by handlers.
package response

import (
	"net/http"

	"warga_portal_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// FromError maps a domain error to its HTTP status and writes the JSON body.
// Untyped errors are treated as internal.
func FromError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperr.Error); ok {
		Error(c, appErr.HTTPStatus(), appErr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, "internal server error")
}

// internal/interfaces/http/handlers/respond.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
)

// statusFor maps an application error kind to an HTTP status code
func statusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return http.StatusNotFound
	case apperror.KindInvalidRequest, apperror.KindInvalidFormat:
		return http.StatusBadRequest
	case apperror.KindInvalidState:
		return http.StatusUnprocessableEntity
	case apperror.KindInsufficientStock:
		return http.StatusConflict
	case apperror.KindConflict:
		return http.StatusConflict
	case apperror.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a typed application error as a JSON response
func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"error": apperror.Reason(err),
	})
}

// respondBindError writes a validation failure from request binding
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

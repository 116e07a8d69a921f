package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
)

// Error codes returned in the response envelope
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeStorage    = "STORAGE_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondFailure(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondBindingError reports a request body or form that could not be decoded
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    CodeValidation,
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}

// respondError maps a service error onto a status and error code.
// Server-side failures are logged and their cause is not exposed.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, errs.ErrValidation):
		respondFailure(c, http.StatusBadRequest, CodeValidation, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		respondFailure(c, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, errs.ErrConflict):
		respondFailure(c, http.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, errs.ErrStorage):
		log.Error("Storage failure", "path", c.Request.URL.Path, "error", err)
		respondFailure(c, http.StatusInternalServerError, CodeStorage, "A storage operation failed")
	default:
		log.Error("Unexpected failure", "path", c.Request.URL.Path, "error", err)
		respondFailure(c, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	}
}

package util

import (
	"errors"
	"net/http"

	"vidyamitra_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the unified JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// FromError maps service errors onto the envelope. NotFound, Forbidden and
// Conflict keep their distinct status codes; everything else, including
// generation failures, collapses to an internal error.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		NotFound(c)
	case errors.Is(err, ErrForbidden):
		Forbidden(c)
	case errors.Is(err, ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, ErrGenerationFailed):
		logger.Log.Error("Content generation failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "AI failed to return valid content")
	default:
		LogInternalError(c, err)
	}
}

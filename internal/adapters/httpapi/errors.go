package httpapi

import (
	"errors"
	"net/http"

	"sns/internal/core/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrPermission):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError maps a use case error to its status and JSON body. Unclassified
// errors are logged and hidden behind a generic message.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	msg, ok := errs.Message(err)
	if !ok {
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(statusOf(err), gin.H{"error": msg})
}

func invalidJSON(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
}

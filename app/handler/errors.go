package handler

import (
	"net/http"

	"boardfarm/internal/service"
	"boardfarm/pkg/logger"

	"github.com/gin-gonic/gin"
)

// writeError maps service errors to HTTP responses. Validation errors carry
// the offending field; everything unexpected becomes a 500.
func writeError(c *gin.Context, err error) {
	if err == service.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if verr, ok := service.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}
	logger.ErrorCtx(c.Request.Context(), "request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

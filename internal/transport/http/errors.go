package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blindattack4/backend/internal/domain"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrReplayNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, domain.ErrGameInProgress):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownDifficulty):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("[HTTP] Internal error", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

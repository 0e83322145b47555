package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todo-api/internal/storage"
)

// HandleHealth reports whether the backing store answers a trivial
// query. Failures expose only the error category, never the message,
// which may carry hosts or credentials.
func (h *handlerImpl) HandleHealth(c *gin.Context) {
	err := h.engine.Ping(c.Request.Context())
	if err != nil {
		logger := h.requestLogger(c)
		logger.Error().
			Err(err).
			Msg("health check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "db_error",
			"detail": storage.ErrorCategory(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

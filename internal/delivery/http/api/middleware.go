package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDCtxKey = "request_id"
	requestIDHeader = "X-Request-ID"
)

// HandleRequestID tags every request with an id so log lines from one
// request can be correlated. A client-supplied X-Request-ID is kept,
// otherwise a fresh uuid is generated.
func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

// requestLogger annotates the handler logger with the request id.
func (h *handlerImpl) requestLogger(c *gin.Context) zerolog.Logger {
	return h.logger.With().
		Str("request_id", c.GetString(requestIDCtxKey)).
		Logger()
}

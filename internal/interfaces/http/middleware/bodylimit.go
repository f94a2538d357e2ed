package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrilink/backend/internal/interfaces/http/dto"
)

// BodyLimitMiddleware rejects request bodies larger than maxBytes. Requests
// with a Content-Length over the limit are rejected up front; chunked bodies
// are capped by MaxBytesReader so a handler reading them gets an error
// instead of an unbounded allocation.
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge,
				dto.NewErrorResponseWithRequestID("REQUEST_TOO_LARGE", "Request body too large", GetRequestID(c)))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

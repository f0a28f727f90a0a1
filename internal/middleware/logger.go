package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestIDKey is the context key the handlers read when tagging their own
// failure lines.
const requestIDKey = "request_id"

// RequestID tags every request with an ID and echoes it in the response, so
// a pipeline run can be traced across the request line, the extraction
// failure line, and the client's own logs. An inbound X-Request-ID is kept.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// Logger writes one line per request in the same "[request_id]" format the
// extraction handlers use. Latency spans the whole pipeline, model
// invocation included, so a slow line points at the provider rather than at
// this service.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		id, _ := c.Get(requestIDKey)
		log.Printf("[%v] %s %s -> %d (%s)",
			id,
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
		)
	}
}

// Recovery turns panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}

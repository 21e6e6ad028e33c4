package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestLog tags each request with an id (reusing a sane inbound
// X-Request-ID) and, once handled, logs the request with the acting user.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		var userID uint
		if u := CurrentUser(c); u != nil {
			userID = u.ID
		}
		log.Printf("[%s] %s %s %d %s user=%d ip=%s",
			id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Millisecond), userID, c.ClientIP())
	}
}

// RequestID returns the id assigned by RequestLog, or "-".
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "-"
}

package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/clinic-booking/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request as a security/endpoint event.
// Events are persisted to the SecurityLog table when util.SetSecurityLoggerDB
// was called during startup.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}

		event := util.SecurityEvent{
			EventType: util.EventEndpointCall,
			RequestID: GetRequestID(c),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		}
		if actor, ok := GetActor(c); ok {
			event.Subject = actor.Subject
			event.Role = string(actor.Role)
			details["user_id"] = actor.UserID
		} else if claims, ok := GetClaims(c); ok {
			event.Subject = claims.Subject
		}

		util.LogSecurityEvent(event)
	}
}

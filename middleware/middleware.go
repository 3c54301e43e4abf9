package middleware

import (
	"net/http"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/directory"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys shared by the middleware chain and the handlers.
const (
	DBKey        = "db"
	ServiceKey   = "booking_service"
	DirectoryKey = "directory"
	ClaimsKey    = "claims"
	ActorKey     = "actor"
	RequestIDKey = "request_id"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		setCorsHeaders(c)

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func setCorsHeaders(c *gin.Context) {
	h := c.Writer.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
	h.Set("Access-Control-Allow-Headers", "X-Requested-With, X-Request-ID, Content-Type, Authorization")
	h.Set("Access-Control-Expose-Headers", "X-Request-ID")
	h.Set("Access-Control-Max-Age", "86400")
	h.Set("Content-Type", "application/json")
}

// DatabaseMiddleware makes db available to handlers through GetDB.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DBKey, db)
		c.Next()
	}
}

// GetDB returns the request's DB, or nil when DatabaseMiddleware is not installed.
func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(DBKey); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}

// ServiceMiddleware injects the booking service and the user directory.
func ServiceMiddleware(svc *booking.Service, dir *directory.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ServiceKey, svc)
		c.Set(DirectoryKey, dir)
		c.Next()
	}
}

func GetService(c *gin.Context) *booking.Service {
	if v, ok := c.Get(ServiceKey); ok {
		if svc, ok := v.(*booking.Service); ok {
			return svc
		}
	}
	return nil
}

func GetDirectory(c *gin.Context) *directory.Directory {
	if v, ok := c.Get(DirectoryKey); ok {
		if dir, ok := v.(*directory.Directory); ok {
			return dir
		}
	}
	return nil
}

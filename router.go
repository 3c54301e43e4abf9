package main

import (
	"fmt"
	"net/http"

	"github.com/ariebrainware/clinic-booking/booking"
	"github.com/ariebrainware/clinic-booking/config"
	"github.com/ariebrainware/clinic-booking/directory"
	_ "github.com/ariebrainware/clinic-booking/docs"
	"github.com/ariebrainware/clinic-booking/endpoint"
	"github.com/ariebrainware/clinic-booking/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func newRouter(cfg *config.Config, db *gorm.DB, svc *booking.Service, dir *directory.Directory, logger zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORSMiddleware(),
		middleware.DatabaseMiddleware(db),
		middleware.ServiceMiddleware(svc, dir),
		middleware.EndpointCallLogger(),
	)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})
	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	endpoint.RegisterRoutes(router, endpoint.RouteOptions{
		Token:     tokenOptions(cfg),
		RateLimit: middleware.RateLimitConfig{Limit: cfg.RateLimit, Window: cfg.RateWindow},
	})
	return router
}

// internal/router/router.go
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/javajoker/realestate-backend/internal/config"
	"github.com/javajoker/realestate-backend/internal/handlers"
	"github.com/javajoker/realestate-backend/internal/middleware"
	"github.com/javajoker/realestate-backend/internal/services"
	"github.com/javajoker/realestate-backend/internal/store"
)

// Initialize wires the property API over the given store. The returned stop
// function releases the rate limiter's background cleanup.
func Initialize(propertyStore store.PropertyStore, cfg *config.Config, logger *logrus.Logger) (*gin.Engine, func()) {
	// Initialize services
	propertyService := services.NewPropertyService(propertyStore, logger)

	// Initialize handlers
	propertyHandler := handlers.NewPropertyHandler(propertyService, logger)

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())

	// Health check
	r.GET("/health", handlers.Health)
	r.GET("/ping", handlers.Ping)

	api := r.Group("/api")
	api.Use(limiter.Middleware())
	{
		// The client depends on the capitalized route; the lowercase
		// one is kept for consistency with the rest of the surface.
		for _, path := range []string{"/Property", "/properties"} {
			properties := api.Group(path)
			properties.GET("", propertyHandler.GetProperties)
			properties.GET("/:id", propertyHandler.GetProperty)
		}
	}

	r.GET("/Properties", limiter.Middleware(), propertyHandler.GetAllProperties)

	return r, limiter.Stop
}

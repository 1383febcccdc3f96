package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shelfview/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		products := v1.Group("/products")
		{
			products.POST("/search", handler.SearchProducts)
			products.GET("/options", handler.GetOptions)
		}

		filters := v1.Group("/filters")
		{
			filters.GET("", handler.GetFilters)
			filters.PUT("", handler.ReplaceFilters)
			filters.DELETE("", handler.ResetFilters)
			filters.PATCH("/:key", handler.UpdateFilter)
		}
	}

	return router
}

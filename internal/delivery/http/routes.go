package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/renalplate/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	if cfg.RateLimit.PerIP > 0 {
		v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	}
	{
		v1.GET("/foods/lookup", handler.LookupFoods)
		v1.POST("/intake/analyze", handler.AnalyzeIntake)
		v1.GET("/advisory/rules", handler.ListRules)
	}

	return router
}

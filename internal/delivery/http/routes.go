package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchboard/backend/config"
	"github.com/matchboard/backend/internal/infrastructure/ratelimit"
	"github.com/matchboard/backend/web"
)

// SetupRouter creates and configures the Gin router. limiter may be nil.
func SetupRouter(cfg *config.Config, handler *Handler, limiter *ratelimit.Registry) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	if cfg.Server.MaxUploadMB > 0 {
		router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20
	}
	router.SetHTMLTemplate(web.MustTemplates())

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(handler.logger))
	router.Use(LoggerMiddleware(handler.logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	if limiter != nil && limiter.Enabled() {
		router.Use(RateLimitMiddleware(limiter))
	}

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// Static assets
	router.StaticFS("/static", http.FS(web.Static()))

	// Pages
	router.GET("/", handler.Dashboard)
	router.GET("/upload", handler.UploadPage)
	router.POST("/upload", handler.UploadProducts)
	router.GET("/competitor", handler.CompetitorPage)
	router.POST("/competitor", handler.SaveCompetitor)
	router.GET("/settings", handler.SettingsPage)
	router.POST("/settings", handler.SaveSettings)
	router.GET("/test-parser", handler.TestParserPage)

	// Matching endpoints
	router.POST("/match", handler.RunMatch)
	router.POST("/save-match", handler.SaveMatches)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", handler.ListProducts)
		v1.GET("/matches", handler.ListMatches)
	}

	return router
}

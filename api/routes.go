package api

import (
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/voxnote/memo-api/api/folders"
	"github.com/voxnote/memo-api/api/health"
	"github.com/voxnote/memo-api/api/recordings"
	"github.com/voxnote/memo-api/api/transcriptions"
	"github.com/voxnote/memo-api/api/types"
	"github.com/voxnote/memo-api/api/version"
	"github.com/voxnote/memo-api/api/waveform"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	// Public routes, no rate limiting
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	if deps == nil {
		deps = &types.Dependencies{}
	}

	// API v1 routes
	v1 := engine.Group("/api/v1")

	// Library routes with general rate limiting (10 req/s, burst of 20)
	libraryGroup := v1.Group("")
	libraryGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	recordings.RegisterRoutes(libraryGroup, deps)
	folders.RegisterRoutes(libraryGroup, deps)
	transcriptions.RegisterRoutes(libraryGroup, deps)

	// Waveform extraction decodes audio, so its rate limit is tighter (5 req/s, burst of 10)
	waveformGroup := v1.Group("")
	waveformGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	waveform.RegisterRoutes(waveformGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}

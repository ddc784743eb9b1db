package waveform

import (
	"github.com/gin-gonic/gin"
	"github.com/voxnote/memo-api/api/types"
)

// RegisterRoutes registers all waveform-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/recordings/:id/waveform", Get(deps))
	router.DELETE("/recordings/:id/waveform", ClearCache(deps))
	router.DELETE("/waveforms", ClearAllCaches(deps))
}

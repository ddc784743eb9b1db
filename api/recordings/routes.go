package recordings

import (
	"github.com/gin-gonic/gin"
	"github.com/voxnote/memo-api/api/types"
)

// RegisterRoutes registers all recording-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/recordings", List(deps))
	router.DELETE("/recordings/:id", Delete(deps))
	router.POST("/recordings/:id/transcribe", Transcribe(deps))
	router.POST("/recordings/:id/play", Play(deps))

	router.POST("/capture/start", StartCapture(deps))
	router.POST("/capture/stop", StopCapture(deps))
	router.POST("/playback/stop", StopPlayback(deps))
}

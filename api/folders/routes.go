package folders

import (
	"github.com/gin-gonic/gin"
	"github.com/voxnote/memo-api/api/types"
)

// RegisterRoutes registers all folder-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/folders", List(deps))
	router.POST("/folders", Create(deps))
	router.PUT("/folders/:id", Rename(deps))
	router.DELETE("/folders/:id", Delete(deps))

	router.POST("/folders/:id/recordings", AddRecording(deps))
	router.DELETE("/folders/:id/recordings/:recordingId", RemoveRecording(deps))
	router.POST("/folders/:id/recordings/:recordingId/move", MoveRecording(deps))
}

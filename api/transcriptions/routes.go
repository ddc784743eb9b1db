package transcriptions

import (
	"github.com/gin-gonic/gin"
	"github.com/voxnote/memo-api/api/types"
)

// RegisterRoutes registers all transcript-related routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/recordings/:id/transcription", Get(deps))
	router.PUT("/recordings/:id/transcription", Put(deps))
	router.DELETE("/recordings/:id/transcription", Delete(deps))
	router.GET("/transcriptions/count", Count(deps))
}

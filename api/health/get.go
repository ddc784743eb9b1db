package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/voxnote/memo-api/api/types"
)

// Get reports liveness plus the state of the two storage tiers the
// library depends on: the recordings directory and the waveform database
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"storage":   storageStatus(deps),
			"database":  databaseStatus(deps),
		}

		c.JSON(http.StatusOK, response)
	}
}

// storageStatus checks that the recordings directory is reachable
func storageStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.RecordingStore == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.RecordingStore.VerifyStorage(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}

// databaseStatus checks the waveform database connection
func databaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}

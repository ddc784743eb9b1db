package waveform

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voxnote/memo-api/api/types"
	"github.com/voxnote/memo-api/internal/models"
	"github.com/voxnote/memo-api/internal/services/waveforms"
)

// Get returns the peak envelope for one recording. The resolution query
// parameter controls the sample count, defaulting to the service default.
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		rec, ok := findRecording(c, deps, recordingID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
			return
		}

		resolution := waveforms.DefaultTargetSamples
		if raw := c.Query("resolution"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resolution"})
				return
			}
			resolution = parsed
		}

		peaks, err := deps.WaveformService.ExtractSamples(c.Request.Context(), rec.FileLocation, resolution)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to extract waveform"})
			return
		}

		c.JSON(http.StatusOK, types.WaveformResponse{
			RecordingID: recordingID.String(),
			Peaks:       peaks,
			Resolution:  len(peaks),
		})
	}
}

// ClearCache evicts the cached waveform for one recording
func ClearCache(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		rec, ok := findRecording(c, deps, recordingID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
			return
		}

		if err := deps.WaveformService.Clear(c.Request.Context(), rec.FileLocation); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Waveform cache cleared"})
	}
}

// ClearAllCaches evicts every cached waveform
func ClearAllCaches(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.WaveformService.ClearAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Waveform caches cleared"})
	}
}

func findRecording(c *gin.Context, deps *types.Dependencies, recordingID uuid.UUID) (models.Recording, bool) {
	for _, rec := range deps.Library.ListRecordings(c.Request.Context()) {
		if rec.ID == recordingID {
			return rec, true
		}
	}
	return models.Recording{}, false
}

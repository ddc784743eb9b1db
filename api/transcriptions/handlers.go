package transcriptions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voxnote/memo-api/api/types"
	"github.com/voxnote/memo-api/internal/services/library"
)

// transcriptRequest is the body for manual transcript edits
type transcriptRequest struct {
	Text string `json:"text"`
}

// Get returns the stored transcript for a recording
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		text, ok := deps.TranscriptStore.Get(c.Request.Context(), recordingID.String())
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No transcript for recording"})
			return
		}

		c.JSON(http.StatusOK, types.TranscriptionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			RecordingID:  recordingID.String(),
			Text:         text,
		})
	}
}

// Put stores a manually edited transcript
func Put(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		var req transcriptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := deps.Library.SetTranscript(c.Request.Context(), recordingID, req.Text); err != nil {
			if errors.Is(err, library.ErrRecordingNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.TranscriptionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			RecordingID:  recordingID.String(),
			Text:         req.Text,
		})
	}
}

// Delete removes the stored transcript for a recording
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		if err := deps.TranscriptStore.Delete(c.Request.Context(), recordingID.String()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Transcript deleted"})
	}
}

// Count returns the number of stored transcripts
func Count(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": types.StatusOK,
			"count":  deps.TranscriptStore.Count(c.Request.Context()),
		})
	}
}

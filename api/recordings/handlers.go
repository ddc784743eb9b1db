package recordings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/voxnote/memo-api/api/types"
	"github.com/voxnote/memo-api/internal/services/folders"
	"github.com/voxnote/memo-api/internal/services/library"
	"github.com/voxnote/memo-api/internal/services/transcriber"
)

// List returns all recordings, optionally filtered to one folder via
// the folder_id query parameter
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if folderParam := c.Query("folder_id"); folderParam != "" {
			folderID, err := uuid.Parse(folderParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
				return
			}

			recs, err := deps.Library.ListRecordingsInFolder(ctx, folderID)
			if err != nil {
				if errors.Is(err, folders.ErrFolderNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list recordings"})
				return
			}

			c.JSON(http.StatusOK, types.RecordingsResponse{
				BaseResponse: types.BaseResponse{Status: types.StatusOK},
				Recordings:   recs,
				Count:        len(recs),
			})
			return
		}

		recs := deps.Library.ListRecordings(ctx)
		c.JSON(http.StatusOK, types.RecordingsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			Recordings:   recs,
			Count:        len(recs),
		})
	}
}

// Delete removes a recording and cascades cleanup into transcripts and
// folder membership
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		if err := deps.Library.DeleteRecording(c.Request.Context(), recordingID); err != nil {
			if errors.Is(err, library.ErrRecordingNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Recording deleted"})
	}
}

// Transcribe runs speech-to-text for a recording and stores the result
func Transcribe(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		text, err := deps.Library.Transcribe(c.Request.Context(), recordingID)
		if err != nil {
			switch {
			case errors.Is(err, library.ErrRecordingNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
			case errors.Is(err, library.ErrTranscriptionInProgress):
				c.JSON(http.StatusConflict, gin.H{"error": "Transcription already in progress"})
			case errors.Is(err, transcriber.ErrInvalidAPIKey), errors.Is(err, transcriber.ErrInvalidAPIKeyFormat):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, types.TranscriptionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK},
			RecordingID:  recordingID.String(),
			Text:         text,
		})
	}
}

// StartCapture begins a new recording
func StartCapture(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		location, err := deps.Library.StartRecording(c.Request.Context())
		if err != nil {
			if errors.Is(err, library.ErrRecordingInProgress) {
				c.JSON(http.StatusConflict, gin.H{"error": "Recording already in progress"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": types.StatusOK, "file_location": location})
	}
}

// StopCapture finishes the active recording
func StopCapture(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Library.StopRecording(c.Request.Context()); err != nil {
			if errors.Is(err, library.ErrNoActiveRecording) {
				c.JSON(http.StatusConflict, gin.H{"error": "No active recording"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Recording stopped"})
	}
}

// Play starts playback of a recording
func Play(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordingID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recording id"})
			return
		}

		if err := deps.Library.Play(c.Request.Context(), recordingID); err != nil {
			switch {
			case errors.Is(err, library.ErrRecordingNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Recording not found"})
			case errors.Is(err, library.ErrRecordingInProgress):
				c.JSON(http.StatusConflict, gin.H{"error": "Recording in progress"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Playing"})
	}
}

// StopPlayback halts the active playback
func StopPlayback(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Library.StopPlayback(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, types.BaseResponse{Status: types.StatusOK, Message: "Playback stopped"})
	}
}

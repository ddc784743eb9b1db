package types

import "github.com/voxnote/memo-api/internal/models"

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`            // One of the Status constants above
	Message string `json:"message,omitempty"` // Human-readable message
}

// RecordingsResponse for recording lists
type RecordingsResponse struct {
	BaseResponse
	Recordings []models.Recording `json:"recordings"`
	Count      int                `json:"count"`
}

// FoldersResponse for folder lists
type FoldersResponse struct {
	BaseResponse
	Folders []models.Folder `json:"folders"`
	Count   int             `json:"count"`
}

// SingleFolderResponse for getting a single folder
type SingleFolderResponse struct {
	BaseResponse
	Folder *models.Folder `json:"folder"`
}

// TranscriptionResponse for transcript reads and writes
type TranscriptionResponse struct {
	BaseResponse
	RecordingID string `json:"recording_id"`
	Text        string `json:"text"`
}

// WaveformResponse holds the peak envelope for one recording
type WaveformResponse struct {
	RecordingID string    `json:"recording_id"`
	Peaks       []float32 `json:"peaks"`
	Resolution  int       `json:"resolution"`
}

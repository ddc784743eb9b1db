package models

import (
	"time"

	"github.com/google/uuid"
)

// Recording represents one audio capture on disk.
//
// The id is derived deterministically from the file name so folder
// membership and transcriptions keyed on it stay valid across restarts.
type Recording struct {
	ID              uuid.UUID `json:"id"`
	FileLocation    string    `json:"file_location"`
	CreatedAt       time.Time `json:"created_at"`
	DurationSeconds float64   `json:"duration_seconds"`

	// Transcription is joined in from the transcript store, never
	// persisted inside the recording itself
	Transcription string `json:"transcription,omitempty"`

	// IsPlaying is a transient playback flag, not persisted
	IsPlaying bool `json:"is_playing"`
}

// Folder is a named set of recording identifiers
type Folder struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	CreatedAt    time.Time   `json:"createdAt"`
	RecordingIDs []uuid.UUID `json:"recordingIds"`
}

// NewFolder creates a folder with a fresh id and an empty membership set
func NewFolder(name string) Folder {
	return Folder{
		ID:           uuid.New(),
		Name:         name,
		CreatedAt:    time.Now(),
		RecordingIDs: []uuid.UUID{},
	}
}

// Contains reports whether the folder holds the given recording
func (f *Folder) Contains(recordingID uuid.UUID) bool {
	for _, id := range f.RecordingIDs {
		if id == recordingID {
			return true
		}
	}
	return false
}

// AddRecording inserts a recording id if not already present
func (f *Folder) AddRecording(recordingID uuid.UUID) {
	if f.Contains(recordingID) {
		return
	}
	f.RecordingIDs = append(f.RecordingIDs, recordingID)
}

// RemoveRecording removes a recording id; no-op if absent
func (f *Folder) RemoveRecording(recordingID uuid.UUID) {
	kept := f.RecordingIDs[:0]
	for _, id := range f.RecordingIDs {
		if id != recordingID {
			kept = append(kept, id)
		}
	}
	f.RecordingIDs = kept
}

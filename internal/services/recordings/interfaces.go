package recordings

import (
	"context"

	"github.com/voxnote/memo-api/internal/models"
	"github.com/voxnote/memo-api/pkg/audio"
)

// Service defines the interface for enumerating and deleting recordings
type Service interface {
	// ListRecordings returns every recording in the recordings
	// directory, newest first. Enumeration is best effort: an unreadable
	// directory yields an empty list, not an error.
	ListRecordings(ctx context.Context) []models.Recording

	// DeleteRecording removes the audio file and reports whether the
	// removal succeeded. Cascading cleanup of transcripts and folder
	// membership is the coordinator's responsibility.
	DeleteRecording(fileLocation string) bool

	// GenerateFileLocation returns a fresh capture path of the form
	// recording_<yyyyMMdd_HHmmss>.m4a inside the recordings directory
	GenerateFileLocation() string

	// VerifyStorage reports whether the recordings directory is reachable
	VerifyStorage() error
}

// Prober reads duration metadata from an audio container
type Prober interface {
	Probe(ctx context.Context, fileLocation string) (*audio.Metadata, error)
}

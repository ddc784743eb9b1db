package library

import (
	"context"

	"github.com/google/uuid"
	"github.com/voxnote/memo-api/internal/models"
)

// Recorder abstracts the OS audio capture layer
type Recorder interface {
	// Start begins capturing into the given file location
	Start(fileLocation string) error

	// Stop finishes the capture and flushes the file
	Stop() error
}

// Player abstracts the OS audio playback layer
type Player interface {
	// Play starts playback of the given file location
	Play(fileLocation string) error

	// Stop halts playback
	Stop() error
}

// Service coordinates the recording, folder, transcript, and waveform
// services into the application's combined view
type Service interface {
	// ListRecordings returns all recordings newest first, joined with
	// their transcripts and playback state
	ListRecordings(ctx context.Context) []models.Recording

	// ListRecordingsInFolder returns the joined view filtered to one folder
	ListRecordingsInFolder(ctx context.Context, folderID uuid.UUID) ([]models.Recording, error)

	// StartRecording stops any playback and begins a new capture,
	// returning the file location being written
	StartRecording(ctx context.Context) (string, error)

	// StopRecording finishes the active capture and files the new
	// recording into the default folder
	StopRecording(ctx context.Context) error

	// Play starts playback of a recording, stopping any previous one
	Play(ctx context.Context, recordingID uuid.UUID) error

	// StopPlayback halts the active playback, if any
	StopPlayback(ctx context.Context) error

	// DeleteRecording removes the audio file and cascades cleanup into
	// the transcript store and every folder. All cleanup steps run even
	// when one fails; failures are joined into the returned error.
	DeleteRecording(ctx context.Context, recordingID uuid.UUID) error

	// Transcribe sends a recording to the transcription endpoint and
	// stores the resulting text. At most one transcription per
	// recording runs at a time.
	Transcribe(ctx context.Context, recordingID uuid.UUID) (string, error)

	// IsTranscribing reports whether a transcription is in flight for
	// the recording, so callers can disable duplicate requests
	IsTranscribing(recordingID uuid.UUID) bool

	// SetTranscript stores a manually edited transcript
	SetTranscript(ctx context.Context, recordingID uuid.UUID, text string) error

	// PreloadWaveforms warms the waveform cache for every recording.
	// Decode failures degrade to "no waveform", they never fail the call.
	PreloadWaveforms(ctx context.Context)
}

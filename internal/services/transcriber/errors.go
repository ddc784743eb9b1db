package transcriber

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAPIKey is returned when no API key is configured
	ErrInvalidAPIKey = errors.New("missing transcription API key")

	// ErrInvalidAPIKeyFormat is returned when the configured key fails
	// the shape check (sk- prefix, minimum length)
	ErrInvalidAPIKeyFormat = errors.New("invalid transcription API key format")

	// ErrServerTimeout is returned for 408/504 responses and request timeouts
	ErrServerTimeout = errors.New("transcription server timed out")

	// ErrFileRead is returned when the audio payload cannot be read
	ErrFileRead = errors.New("failed to read audio file")
)

// TranscriptionError represents a non-timeout failure reported by the
// transcription endpoint
type TranscriptionError struct {
	StatusCode int
	Message    string
}

func (e *TranscriptionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transcription failed (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("transcription failed: %s", e.Message)
}

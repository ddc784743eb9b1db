package audio

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrFFmpegNotFound  = errors.New("ffmpeg binary not found")
	ErrFFprobeNotFound = errors.New("ffprobe binary not found")
	ErrNoAudioTrack    = errors.New("no audio track found")
)

// DecodeError represents a failure while decoding or probing an audio file
type DecodeError struct {
	Operation string // The operation that failed (e.g., "pcm_conversion", "probe")
	File      string // The file being processed
	Err       error  // The underlying error
	Stderr    string // stderr output from ffmpeg/ffprobe
}

func (e *DecodeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("audio %s failed for %s: %v (stderr: %s)", e.Operation, e.File, e.Err, e.Stderr)
	}
	return fmt.Sprintf("audio %s failed for %s: %v", e.Operation, e.File, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(operation, file string, err error, stderr string) *DecodeError {
	return &DecodeError{
		Operation: operation,
		File:      file,
		Err:       err,
		Stderr:    stderr,
	}
}

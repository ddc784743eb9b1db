package library

import "errors"

var (
	// ErrRecordingNotFound is returned for unknown recording ids
	ErrRecordingNotFound = errors.New("recording not found")

	// ErrTranscriptionInProgress is returned when a transcription is
	// already in flight for the recording
	ErrTranscriptionInProgress = errors.New("transcription already in progress")

	// ErrRecordingInProgress is returned when a capture is already active
	ErrRecordingInProgress = errors.New("recording already in progress")

	// ErrNoActiveRecording is returned by StopRecording when idle
	ErrNoActiveRecording = errors.New("no active recording")

	// ErrDeleteFailed is returned when the audio file could not be removed
	ErrDeleteFailed = errors.New("failed to delete recording file")
)

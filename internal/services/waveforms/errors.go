package waveforms

import "errors"

var (
	// ErrWaveformNotFound is returned when no stored waveform exists for a file
	ErrWaveformNotFound = errors.New("waveform not found")

	// ErrEmptyFileLocation is returned when a file location is empty
	ErrEmptyFileLocation = errors.New("empty file location")
)

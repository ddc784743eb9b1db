package library

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// NullRecorder stands in for the OS capture layer. Start creates an
// empty file at the target location so the capture flow produces a
// listable recording; no audio is written.
type NullRecorder struct {
	mu     sync.Mutex
	handle *os.File
}

// NewNullRecorder creates a recorder that writes empty files
func NewNullRecorder() *NullRecorder {
	return &NullRecorder{}
}

// Start creates the capture target file
func (r *NullRecorder) Start(fileLocation string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle != nil {
		return fmt.Errorf("capture already in progress: %s", r.handle.Name())
	}

	if err := os.MkdirAll(filepath.Dir(fileLocation), 0755); err != nil {
		return fmt.Errorf("failed to create recordings directory: %w", err)
	}

	f, err := os.Create(fileLocation)
	if err != nil {
		return fmt.Errorf("failed to create capture file: %w", err)
	}

	r.handle = f
	log.Printf("[DEBUG] Capture started at %s", fileLocation)
	return nil
}

// Stop closes the capture target file
func (r *NullRecorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.handle == nil {
		return nil
	}

	err := r.handle.Close()
	r.handle = nil
	return err
}

// NullPlayer stands in for the OS playback layer; it only logs
type NullPlayer struct{}

// NewNullPlayer creates a player that performs no audio output
func NewNullPlayer() *NullPlayer {
	return &NullPlayer{}
}

// Play logs the playback request
func (p *NullPlayer) Play(fileLocation string) error {
	log.Printf("[DEBUG] Playback started for %s", fileLocation)
	return nil
}

// Stop logs the stop request
func (p *NullPlayer) Stop() error {
	log.Printf("[DEBUG] Playback stopped")
	return nil
}

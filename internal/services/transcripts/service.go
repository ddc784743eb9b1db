package transcripts

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// service implements Service over a single flat JSON object document.
// The same single-writer discipline as the folder store: a mutex
// serializes every operation, each mutation rewrites the whole document.
type service struct {
	path string

	mu           sync.Mutex
	transcripts  map[string]string
	corruptReset bool
}

// NewService loads the transcriptions document, tolerating a missing or
// corrupt file by starting from an empty map
func NewService(path string) Service {
	s := &service{path: path}
	s.load()
	return s
}

// load reads the document into memory. A missing file is a first run; a
// corrupt file is flagged and silently reset to empty. Note a merely
// transiently unreadable file is also reset, a known data-loss risk.
func (s *service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[DEBUG] Transcriptions document %s not found, starting empty", s.path)
		} else {
			log.Printf("[DEBUG] Transcriptions document %s unreadable, resetting to empty: %v", s.path, err)
			s.corruptReset = true
		}
		s.transcripts = map[string]string{}
		return
	}

	var transcripts map[string]string
	if err := json.Unmarshal(data, &transcripts); err != nil {
		log.Printf("[DEBUG] Transcriptions document %s corrupt, resetting to empty: %v", s.path, err)
		s.corruptReset = true
		s.transcripts = map[string]string{}
		return
	}

	s.transcripts = transcripts
	log.Printf("[DEBUG] Loaded %d transcriptions from %s", len(transcripts), s.path)
}

// save rewrites the whole document atomically. Callers must hold mu.
func (s *service) save() error {
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating transcriptions directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.transcripts, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding transcriptions: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing transcriptions document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing transcriptions document: %w", err)
	}

	return nil
}

// Get returns the transcript for a recording id
func (s *service) Get(ctx context.Context, recordingID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.transcripts[recordingID]
	return text, ok
}

// Set stores a transcript and persists before returning
func (s *service) Set(ctx context.Context, recordingID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcripts[recordingID] = text
	return s.save()
}

// Delete removes a transcript and persists before returning
func (s *service) Delete(ctx context.Context, recordingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transcripts, recordingID)
	return s.save()
}

// Count returns the number of stored transcripts
func (s *service) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.transcripts)
}

// RecoveredFromCorruption reports whether init reset a corrupt document
func (s *service) RecoveredFromCorruption() bool {
	return s.corruptReset
}

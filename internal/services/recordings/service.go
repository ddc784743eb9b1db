package recordings

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/voxnote/memo-api/internal/models"
)

// service implements Service over a flat recordings directory
type service struct {
	dir        string
	extensions map[string]bool
	prober     Prober

	// durations memoizes probed durations per file so repeated directory
	// scans do not spawn a prober subprocess per file. Entries are keyed
	// by location and invalidated when the file's mod time changes.
	mu        sync.Mutex
	durations map[string]durationEntry
}

type durationEntry struct {
	modTime  time.Time
	duration float64
}

// NewService creates a recording store over the given directory.
// extensions lists the audio file extensions to enumerate (".m4a" by
// default when empty).
func NewService(dir string, extensions []string, prober Prober) Service {
	if len(extensions) == 0 {
		extensions = []string{".m4a"}
	}
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}
	return &service{
		dir:        dir,
		extensions: extSet,
		prober:     prober,
		durations:  make(map[string]durationEntry),
	}
}

// ListRecordings enumerates audio files in the recordings directory
func (s *service) ListRecordings(ctx context.Context) []models.Recording {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("[DEBUG] Failed to list recordings directory %s: %v", s.dir, err)
		return []models.Recording{}
	}

	recordings := make([]models.Recording, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !s.extensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("[DEBUG] Skipping %s: %v", name, err)
			continue
		}

		location := filepath.Join(s.dir, name)
		recordings = append(recordings, models.Recording{
			ID:              DeterministicID(name),
			FileLocation:    location,
			CreatedAt:       info.ModTime(),
			DurationSeconds: s.probeDuration(ctx, location, info.ModTime()),
		})
	}

	// Newest first
	sort.Slice(recordings, func(i, j int) bool {
		return recordings[i].CreatedAt.After(recordings[j].CreatedAt)
	})

	return recordings
}

// probeDuration reads the duration from the container, serving the memo
// when the file is unchanged since the last probe. An unreadable file
// degrades to zero rather than dropping the recording; failures are not
// memoized so a transient probe error retries on the next scan.
func (s *service) probeDuration(ctx context.Context, location string, modTime time.Time) float64 {
	s.mu.Lock()
	if entry, ok := s.durations[location]; ok && entry.modTime.Equal(modTime) {
		s.mu.Unlock()
		return entry.duration
	}
	s.mu.Unlock()

	meta, err := s.prober.Probe(ctx, location)
	if err != nil {
		log.Printf("[DEBUG] Failed to probe duration for %s: %v", location, err)
		return 0
	}

	s.mu.Lock()
	s.durations[location] = durationEntry{modTime: modTime, duration: meta.Duration}
	s.mu.Unlock()
	return meta.Duration
}

// DeleteRecording removes the audio file
func (s *service) DeleteRecording(fileLocation string) bool {
	s.mu.Lock()
	delete(s.durations, fileLocation)
	s.mu.Unlock()

	if err := os.Remove(fileLocation); err != nil {
		log.Printf("[DEBUG] Failed to delete recording %s: %v", fileLocation, err)
		return false
	}
	return true
}

// GenerateFileLocation returns a capture path named by the current time
func (s *service) GenerateFileLocation() string {
	name := fmt.Sprintf("recording_%s.m4a", time.Now().Format("20060102_150405"))
	return filepath.Join(s.dir, name)
}

// VerifyStorage reports whether the recordings directory is reachable
func (s *service) VerifyStorage() error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("recordings directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("recordings path %s is not a directory", s.dir)
	}
	return nil
}

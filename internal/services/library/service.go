package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/voxnote/memo-api/internal/models"
	"github.com/voxnote/memo-api/internal/services/folders"
	"github.com/voxnote/memo-api/internal/services/recordings"
	"github.com/voxnote/memo-api/internal/services/transcriber"
	"github.com/voxnote/memo-api/internal/services/transcripts"
	"github.com/voxnote/memo-api/internal/services/waveforms"
)

// playbackState tracks the capture/playback lifecycle
type playbackState int

const (
	stateIdle playbackState = iota
	stateRecording
	statePlaying
)

// service implements Service. Cross-store effects are sequenced here
// explicitly; the stores themselves are independent of each other.
type service struct {
	recordings  recordings.Service
	folderStore folders.Service
	transcripts transcripts.Service
	transcriber transcriber.Service
	waveforms   waveforms.Service
	recorder    Recorder
	player      Player

	mu              sync.Mutex
	state           playbackState
	activeLocation  string    // capture target while recording
	playingID       uuid.UUID // recording being played back
	playingLocation string
	inflight        map[uuid.UUID]bool // transcriptions currently running
}

// NewService creates the coordinator
func NewService(
	recordingStore recordings.Service,
	folderStore folders.Service,
	transcriptStore transcripts.Service,
	transcriptionClient transcriber.Service,
	waveformService waveforms.Service,
	recorder Recorder,
	player Player,
) Service {
	return &service{
		recordings:  recordingStore,
		folderStore: folderStore,
		transcripts: transcriptStore,
		transcriber: transcriptionClient,
		waveforms:   waveformService,
		recorder:    recorder,
		player:      player,
		inflight:    make(map[uuid.UUID]bool),
	}
}

// ListRecordings returns the joined recording view, newest first
func (s *service) ListRecordings(ctx context.Context) []models.Recording {
	recs := s.recordings.ListRecordings(ctx)

	s.mu.Lock()
	playingID := s.playingID
	playing := s.state == statePlaying
	s.mu.Unlock()

	for i := range recs {
		if text, ok := s.transcripts.Get(ctx, recs[i].ID.String()); ok {
			recs[i].Transcription = text
		}
		recs[i].IsPlaying = playing && recs[i].ID == playingID
	}

	return recs
}

// ListRecordingsInFolder filters the joined view to one folder's membership
func (s *service) ListRecordingsInFolder(ctx context.Context, folderID uuid.UUID) ([]models.Recording, error) {
	ids, err := s.folderStore.RecordingsInFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	members := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		members[id] = true
	}

	all := s.ListRecordings(ctx)
	filtered := make([]models.Recording, 0, len(ids))
	for _, rec := range all {
		if members[rec.ID] {
			filtered = append(filtered, rec)
		}
	}

	return filtered, nil
}

// StartRecording stops playback and begins a new capture
func (s *service) StartRecording(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateRecording {
		return "", ErrRecordingInProgress
	}
	if s.state == statePlaying {
		if err := s.player.Stop(); err != nil {
			log.Printf("[DEBUG] Failed to stop playback before recording: %v", err)
		}
		s.state = stateIdle
		s.playingID = uuid.Nil
	}

	location := s.recordings.GenerateFileLocation()
	if err := s.recorder.Start(location); err != nil {
		return "", fmt.Errorf("starting capture: %w", err)
	}

	s.state = stateRecording
	s.activeLocation = location
	return location, nil
}

// StopRecording finishes the active capture
func (s *service) StopRecording(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateRecording {
		return ErrNoActiveRecording
	}

	location := s.activeLocation
	err := s.recorder.Stop()
	s.state = stateIdle
	s.activeLocation = ""
	if err != nil {
		return fmt.Errorf("stopping capture: %w", err)
	}

	// New captures are filed into the default folder. The capture itself
	// already succeeded, so a filing failure is only logged.
	recordingID := recordings.DeterministicID(filepath.Base(location))
	if folder, ferr := s.folderStore.DefaultFolder(ctx); ferr != nil {
		log.Printf("[DEBUG] No default folder for new capture: %v", ferr)
	} else if ferr := s.folderStore.AddRecording(ctx, recordingID, folder.ID); ferr != nil {
		log.Printf("[DEBUG] Failed to file capture into %s: %v", folder.Name, ferr)
	}

	return nil
}

// Play starts playback of a recording
func (s *service) Play(ctx context.Context, recordingID uuid.UUID) error {
	rec, err := s.findRecording(ctx, recordingID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateRecording {
		return ErrRecordingInProgress
	}
	if s.state == statePlaying {
		if err := s.player.Stop(); err != nil {
			log.Printf("[DEBUG] Failed to stop previous playback: %v", err)
		}
	}

	if err := s.player.Play(rec.FileLocation); err != nil {
		s.state = stateIdle
		s.playingID = uuid.Nil
		return fmt.Errorf("starting playback: %w", err)
	}

	s.state = statePlaying
	s.playingID = recordingID
	s.playingLocation = rec.FileLocation
	return nil
}

// StopPlayback halts the active playback
func (s *service) StopPlayback(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopPlaybackLocked()
}

func (s *service) stopPlaybackLocked() error {
	if s.state != statePlaying {
		return nil
	}

	err := s.player.Stop()
	s.state = stateIdle
	s.playingID = uuid.Nil
	s.playingLocation = ""
	if err != nil {
		return fmt.Errorf("stopping playback: %w", err)
	}
	return nil
}

// DeleteRecording removes the file and cascades cleanup. Every cleanup
// step runs even when an earlier one fails; the deleted file is never
// re-added on partial failure.
func (s *service) DeleteRecording(ctx context.Context, recordingID uuid.UUID) error {
	rec, err := s.findRecording(ctx, recordingID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.state == statePlaying && s.playingID == recordingID {
		if err := s.stopPlaybackLocked(); err != nil {
			log.Printf("[DEBUG] Failed to stop playback of deleted recording: %v", err)
		}
	}
	s.mu.Unlock()

	var errs []error

	if !s.recordings.DeleteRecording(rec.FileLocation) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrDeleteFailed, rec.FileLocation))
	}

	if err := s.transcripts.Delete(ctx, recordingID.String()); err != nil {
		errs = append(errs, fmt.Errorf("deleting transcript: %w", err))
	}

	if err := s.folderStore.RemoveFromAllFolders(ctx, recordingID); err != nil {
		errs = append(errs, fmt.Errorf("removing folder membership: %w", err))
	}

	if err := s.waveforms.Clear(ctx, rec.FileLocation); err != nil {
		log.Printf("[DEBUG] Failed to clear waveform cache for %s: %v", rec.FileLocation, err)
	}

	return errors.Join(errs...)
}

// Transcribe runs the transcription client for a recording and stores
// the result. Duplicate requests for a recording are rejected while one
// is in flight.
func (s *service) Transcribe(ctx context.Context, recordingID uuid.UUID) (string, error) {
	rec, err := s.findRecording(ctx, recordingID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.inflight[recordingID] {
		s.mu.Unlock()
		return "", ErrTranscriptionInProgress
	}
	s.inflight[recordingID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, recordingID)
		s.mu.Unlock()
	}()

	text, err := s.transcriber.Transcribe(ctx, rec.FileLocation)
	if err != nil {
		return "", err
	}

	if err := s.transcripts.Set(ctx, recordingID.String(), text); err != nil {
		return "", fmt.Errorf("storing transcript: %w", err)
	}

	return text, nil
}

// IsTranscribing reports whether a transcription is in flight
func (s *service) IsTranscribing(recordingID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[recordingID]
}

// SetTranscript stores a manually edited transcript
func (s *service) SetTranscript(ctx context.Context, recordingID uuid.UUID, text string) error {
	if _, err := s.findRecording(ctx, recordingID); err != nil {
		return err
	}
	return s.transcripts.Set(ctx, recordingID.String(), text)
}

// PreloadWaveforms warms the waveform cache for every recording
func (s *service) PreloadWaveforms(ctx context.Context) {
	for _, rec := range s.recordings.ListRecordings(ctx) {
		if _, err := s.waveforms.ExtractSamples(ctx, rec.FileLocation, 0); err != nil {
			log.Printf("[DEBUG] No waveform for %s: %v", rec.FileLocation, err)
		}
	}
}

// findRecording resolves a recording id against the current directory scan
func (s *service) findRecording(ctx context.Context, recordingID uuid.UUID) (models.Recording, error) {
	for _, rec := range s.recordings.ListRecordings(ctx) {
		if rec.ID == recordingID {
			return rec, nil
		}
	}
	return models.Recording{}, ErrRecordingNotFound
}

package waveforms

import (
	"context"
	"log"
	"sync"

	"github.com/voxnote/memo-api/internal/models"
)

// maxSampleMagnitude is the largest representable 16-bit amplitude
const maxSampleMagnitude = 32767.0

// DefaultTargetSamples is the envelope length used when callers don't
// ask for a specific resolution
const DefaultTargetSamples = 100

// service implements Service with an unbounded in-memory cache keyed by
// file location and an optional write-through durable repository.
//
// Concurrent requests for the same uncached file may both decode and
// race to insert; last write wins, which is acceptable since results
// are deterministic.
type service struct {
	decoder       Decoder
	repo          Repository // may be nil
	targetSamples int

	mu    sync.RWMutex
	cache map[string][]float32
}

// NewService creates a new waveform service. repo may be nil to run
// memory-only.
func NewService(decoder Decoder, repo Repository, targetSamples int) Service {
	if targetSamples <= 0 {
		targetSamples = DefaultTargetSamples
	}
	return &service{
		decoder:       decoder,
		repo:          repo,
		targetSamples: targetSamples,
		cache:         make(map[string][]float32),
	}
}

// ExtractSamples returns the peak envelope for an audio file
func (s *service) ExtractSamples(ctx context.Context, fileLocation string, targetCount int) ([]float32, error) {
	if fileLocation == "" {
		return nil, ErrEmptyFileLocation
	}
	if targetCount <= 0 {
		targetCount = s.targetSamples
	}

	if cached, ok := s.getCached(fileLocation); ok {
		return cached, nil
	}

	// Durable tier before decoding: envelopes persisted by a previous
	// run are served without touching ffmpeg
	if samples, ok := s.loadStored(ctx, fileLocation); ok {
		s.setCached(fileLocation, samples)
		return samples, nil
	}

	samples, duration, err := s.decode(ctx, fileLocation, targetCount)
	if err != nil {
		// Nothing is cached on failure
		return nil, err
	}

	s.setCached(fileLocation, samples)
	s.store(ctx, fileLocation, samples, duration)

	return samples, nil
}

// Clear drops the cached envelope for one file
func (s *service) Clear(ctx context.Context, fileLocation string) error {
	s.mu.Lock()
	delete(s.cache, fileLocation)
	s.mu.Unlock()

	if s.repo != nil {
		return s.repo.Delete(ctx, fileLocation)
	}
	return nil
}

// ClearAll drops every cached envelope
func (s *service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	s.cache = make(map[string][]float32)
	s.mu.Unlock()

	if s.repo != nil {
		return s.repo.DeleteAll(ctx)
	}
	return nil
}

func (s *service) getCached(fileLocation string) ([]float32, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	samples, ok := s.cache[fileLocation]
	return samples, ok
}

func (s *service) setCached(fileLocation string, samples []float32) {
	s.mu.Lock()
	s.cache[fileLocation] = samples
	s.mu.Unlock()
}

// loadStored fetches a previously persisted envelope. Like the memory
// cache, the stored row wins regardless of the requested resolution.
func (s *service) loadStored(ctx context.Context, fileLocation string) ([]float32, bool) {
	if s.repo == nil {
		return nil, false
	}

	stored, err := s.repo.GetByFileLocation(ctx, fileLocation)
	if err != nil || stored == nil {
		return nil, false
	}

	peaks, err := stored.Peaks()
	if err != nil {
		log.Printf("[DEBUG] Discarding undecodable stored waveform for %s: %v", fileLocation, err)
		return nil, false
	}
	return peaks, true
}

// store persists the envelope write-through; failures are logged, not
// surfaced, since the memory cache already holds the result
func (s *service) store(ctx context.Context, fileLocation string, samples []float32, duration float64) {
	if s.repo == nil {
		return
	}

	waveform := &models.Waveform{
		FileLocation: fileLocation,
		Duration:     duration,
	}
	if err := waveform.SetPeaks(samples); err != nil {
		log.Printf("[DEBUG] Failed to encode peaks for %s: %v", fileLocation, err)
		return
	}
	if err := s.repo.Upsert(ctx, waveform); err != nil {
		log.Printf("[DEBUG] Failed to persist waveform for %s: %v", fileLocation, err)
	}
}

// decode produces the normalized envelope from the raw audio
func (s *service) decode(ctx context.Context, fileLocation string, targetCount int) ([]float32, float64, error) {
	meta, err := s.decoder.Probe(ctx, fileLocation)
	if err != nil {
		return nil, 0, err
	}

	pcm, err := s.decoder.DecodePCM(ctx, fileLocation)
	if err != nil {
		return nil, 0, err
	}

	envelope := make([]float32, len(pcm))
	for i, sample := range pcm {
		v := int(sample)
		if v < 0 {
			v = -v
		}
		envelope[i] = float32(v) / maxSampleMagnitude
	}

	downsampled := downsamplePeaks(envelope, targetCount)
	return normalizeSamples(downsampled), meta.Duration, nil
}

// downsamplePeaks partitions the envelope into targetCount contiguous
// segments and keeps the maximum of each, preserving transients. An
// envelope no longer than targetCount is returned unchanged.
func downsamplePeaks(samples []float32, targetCount int) []float32 {
	if len(samples) == 0 {
		return []float32{}
	}
	if len(samples) <= targetCount {
		return samples
	}

	samplesPerSegment := len(samples) / targetCount
	result := make([]float32, 0, targetCount)

	for i := 0; i < targetCount; i++ {
		start := i * samplesPerSegment
		end := start + samplesPerSegment
		if end > len(samples) {
			end = len(samples)
		}

		var segmentMax float32
		for _, v := range samples[start:end] {
			if v > segmentMax {
				segmentMax = v
			}
		}
		result = append(result, segmentMax)
	}

	return result
}

// normalizeSamples scales the envelope so its own maximum maps to 1.0.
// Silence (all-zero) is returned unchanged.
func normalizeSamples(samples []float32) []float32 {
	var max float32
	for _, v := range samples {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return samples
	}

	normalized := make([]float32, len(samples))
	for i, v := range samples {
		normalized[i] = v / max
	}
	return normalized
}

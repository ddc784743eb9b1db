package waveforms

import (
	"context"

	"github.com/voxnote/memo-api/internal/models"
	"github.com/voxnote/memo-api/pkg/audio"
)

// Service defines the interface for waveform extraction
type Service interface {
	// ExtractSamples returns the normalized peak envelope for an audio
	// file, decoding it on first request and serving the cache afterwards.
	// A targetCount <= 0 uses the service default.
	ExtractSamples(ctx context.Context, fileLocation string, targetCount int) ([]float32, error)

	// Clear drops the cached envelope for one file; idempotent
	Clear(ctx context.Context, fileLocation string) error

	// ClearAll drops every cached envelope; idempotent
	ClearAll(ctx context.Context) error
}

// Decoder abstracts PCM extraction so tests can substitute a fake
type Decoder interface {
	DecodePCM(ctx context.Context, fileLocation string) ([]int16, error)
	Probe(ctx context.Context, fileLocation string) (*audio.Metadata, error)
}

// Repository defines the durable tier of the waveform cache
type Repository interface {
	// GetByFileLocation retrieves a stored waveform by source file
	GetByFileLocation(ctx context.Context, fileLocation string) (*models.Waveform, error)

	// Upsert creates or replaces the waveform for a source file
	Upsert(ctx context.Context, waveform *models.Waveform) error

	// Delete removes the waveform for a source file; no error if absent
	Delete(ctx context.Context, fileLocation string) error

	// DeleteAll removes every stored waveform
	DeleteAll(ctx context.Context) error
}

package waveforms_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/voxnote/memo-api/internal/models"
	"github.com/voxnote/memo-api/internal/services/waveforms"
	"github.com/voxnote/memo-api/pkg/audio"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type dbTestSuite struct {
	t    *testing.T
	db   *gorm.DB
	repo waveforms.Repository
}

func setupDBTestSuite(t *testing.T) *dbTestSuite {
	t.Helper()
	tempDBPath := filepath.Join(t.TempDir(), "test.db")

	db, err := gorm.Open(sqlite.Open(tempDBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Waveform{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &dbTestSuite{t: t, db: db, repo: waveforms.NewRepository(db)}
}

func makeWaveform(t *testing.T, fileLocation string, peaks []float32) *models.Waveform {
	t.Helper()
	waveform := &models.Waveform{FileLocation: fileLocation, Duration: 10.0}
	if err := waveform.SetPeaks(peaks); err != nil {
		t.Fatalf("Failed to encode peaks: %v", err)
	}
	return waveform
}

func TestRepositoryUpsertAndGet(t *testing.T) {
	suite := setupDBTestSuite(t)
	ctx := context.Background()

	original := makeWaveform(t, "/audio/a.m4a", []float32{0.1, 0.5, 1.0})
	if err := suite.repo.Upsert(ctx, original); err != nil {
		t.Fatalf("Failed to upsert waveform: %v", err)
	}

	stored, err := suite.repo.GetByFileLocation(ctx, "/audio/a.m4a")
	if err != nil {
		t.Fatalf("Failed to get waveform: %v", err)
	}

	peaks, err := stored.Peaks()
	if err != nil {
		t.Fatalf("Failed to decode peaks: %v", err)
	}
	if len(peaks) != 3 || peaks[2] != 1.0 {
		t.Errorf("unexpected stored peaks %v", peaks)
	}
	if stored.Resolution != 3 {
		t.Errorf("expected resolution 3, got %d", stored.Resolution)
	}
}

func TestRepositoryUpsertReplaces(t *testing.T) {
	suite := setupDBTestSuite(t)
	ctx := context.Background()

	if err := suite.repo.Upsert(ctx, makeWaveform(t, "/audio/a.m4a", []float32{0.1})); err != nil {
		t.Fatalf("Failed to upsert waveform: %v", err)
	}
	if err := suite.repo.Upsert(ctx, makeWaveform(t, "/audio/a.m4a", []float32{0.9, 1.0})); err != nil {
		t.Fatalf("Failed to upsert replacement: %v", err)
	}

	stored, err := suite.repo.GetByFileLocation(ctx, "/audio/a.m4a")
	if err != nil {
		t.Fatalf("Failed to get waveform: %v", err)
	}
	if stored.Resolution != 2 {
		t.Errorf("expected replacement resolution 2, got %d", stored.Resolution)
	}

	var count int64
	suite.db.Model(&models.Waveform{}).Count(&count)
	if count != 1 {
		t.Errorf("expected a single row after upsert, got %d", count)
	}
}

func TestRepositoryGetMissing(t *testing.T) {
	suite := setupDBTestSuite(t)

	_, err := suite.repo.GetByFileLocation(context.Background(), "/audio/missing.m4a")
	if !errors.Is(err, waveforms.ErrWaveformNotFound) {
		t.Errorf("expected ErrWaveformNotFound, got %v", err)
	}
}

func TestRepositoryDelete(t *testing.T) {
	suite := setupDBTestSuite(t)
	ctx := context.Background()

	if err := suite.repo.Upsert(ctx, makeWaveform(t, "/audio/a.m4a", []float32{0.5})); err != nil {
		t.Fatalf("Failed to upsert waveform: %v", err)
	}

	if err := suite.repo.Delete(ctx, "/audio/a.m4a"); err != nil {
		t.Fatalf("Failed to delete waveform: %v", err)
	}
	if _, err := suite.repo.GetByFileLocation(ctx, "/audio/a.m4a"); !errors.Is(err, waveforms.ErrWaveformNotFound) {
		t.Errorf("expected ErrWaveformNotFound after delete, got %v", err)
	}

	// Deleting an absent row is not an error
	if err := suite.repo.Delete(ctx, "/audio/a.m4a"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRepositoryDeleteAll(t *testing.T) {
	suite := setupDBTestSuite(t)
	ctx := context.Background()

	for _, location := range []string{"/audio/a.m4a", "/audio/b.m4a"} {
		if err := suite.repo.Upsert(ctx, makeWaveform(t, location, []float32{0.5})); err != nil {
			t.Fatalf("Failed to upsert waveform: %v", err)
		}
	}

	if err := suite.repo.DeleteAll(ctx); err != nil {
		t.Fatalf("Failed to delete all waveforms: %v", err)
	}

	var count int64
	suite.db.Unscoped().Model(&models.Waveform{}).Where("deleted_at IS NULL").Count(&count)
	if count != 0 {
		t.Errorf("expected no live rows, got %d", count)
	}
}

// stubDecoder feeds fixed PCM into the service so the write-through path
// can be exercised against a real database
type stubDecoder struct {
	samples []int16
}

func (d *stubDecoder) DecodePCM(ctx context.Context, fileLocation string) ([]int16, error) {
	return d.samples, nil
}

func (d *stubDecoder) Probe(ctx context.Context, fileLocation string) (*audio.Metadata, error) {
	return &audio.Metadata{Duration: 2.0, Channels: 1}, nil
}

func TestServiceWriteThroughSurvivesRestart(t *testing.T) {
	suite := setupDBTestSuite(t)
	ctx := context.Background()

	first := waveforms.NewService(&stubDecoder{samples: []int16{100, -200, 300}}, suite.repo, 100)
	extracted, err := first.ExtractSamples(ctx, "/audio/a.m4a", 100)
	if err != nil {
		t.Fatalf("Failed to extract samples: %v", err)
	}

	// A fresh service over the same database serves the stored envelope
	// without touching the decoder
	second := waveforms.NewService(&stubDecoder{samples: nil}, suite.repo, 100)
	restored, err := second.ExtractSamples(ctx, "/audio/a.m4a", 100)
	if err != nil {
		t.Fatalf("Failed to extract samples after restart: %v", err)
	}

	if len(restored) != len(extracted) {
		t.Fatalf("expected %d samples, got %d", len(extracted), len(restored))
	}
	for i := range restored {
		if restored[i] != extracted[i] {
			t.Errorf("sample %d differs: %v vs %v", i, restored[i], extracted[i])
		}
	}
}

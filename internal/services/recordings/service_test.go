package recordings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/voxnote/memo-api/pkg/audio"
)

// mockProber is a mock implementation of Prober for testing
type mockProber struct {
	duration   float64
	probeErr   error
	probeCalls int
}

func (m *mockProber) Probe(ctx context.Context, fileLocation string) (*audio.Metadata, error) {
	m.probeCalls++
	if m.probeErr != nil {
		return nil, m.probeErr
	}
	return &audio.Metadata{Duration: m.duration, Channels: 1}, nil
}

func writeRecording(t *testing.T, dir, name string, modTime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("setting times on %s: %v", name, err)
	}
}

func TestListRecordingsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeRecording(t, dir, "recording_20240101_120000.m4a", base)
	writeRecording(t, dir, "recording_20240102_120000.m4a", base.Add(time.Minute))
	writeRecording(t, dir, "recording_20240103_120000.m4a", base.Add(2*time.Minute))

	service := NewService(dir, nil, &mockProber{duration: 3.5})
	recordings := service.ListRecordings(context.Background())

	if len(recordings) != 3 {
		t.Fatalf("expected 3 recordings, got %d", len(recordings))
	}
	for i := 1; i < len(recordings); i++ {
		if recordings[i].CreatedAt.After(recordings[i-1].CreatedAt) {
			t.Errorf("recordings out of order at index %d", i)
		}
	}
	if recordings[0].DurationSeconds != 3.5 {
		t.Errorf("expected probed duration 3.5, got %v", recordings[0].DurationSeconds)
	}
}

func TestListRecordingsFiltersNonAudio(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeRecording(t, dir, "recording_20240101_120000.m4a", now)
	writeRecording(t, dir, "notes.txt", now)
	writeRecording(t, dir, ".hidden.m4a", now)
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0755); err != nil {
		t.Fatalf("creating subdir: %v", err)
	}

	service := NewService(dir, []string{".m4a"}, &mockProber{})
	recordings := service.ListRecordings(context.Background())

	if len(recordings) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(recordings))
	}
}

func TestListRecordingsMissingDirectory(t *testing.T) {
	service := NewService("/nonexistent/recordings", nil, &mockProber{})

	recordings := service.ListRecordings(context.Background())
	if recordings == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(recordings) != 0 {
		t.Errorf("expected no recordings, got %d", len(recordings))
	}
}

func TestListRecordingsProbeFailureDegradesToZero(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "recording_20240101_120000.m4a", time.Now())

	service := NewService(dir, nil, &mockProber{probeErr: errors.New("no audio track")})
	recordings := service.ListRecordings(context.Background())

	if len(recordings) != 1 {
		t.Fatalf("expected the recording to survive a probe failure, got %d", len(recordings))
	}
	if recordings[0].DurationSeconds != 0 {
		t.Errorf("expected zero duration, got %v", recordings[0].DurationSeconds)
	}
}

func TestListRecordingsStableIDs(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "recording_20240101_120000.m4a", time.Now())

	service := NewService(dir, nil, &mockProber{})
	first := service.ListRecordings(context.Background())
	second := service.ListRecordings(context.Background())

	if first[0].ID != second[0].ID {
		t.Errorf("expected stable id across scans, got %s and %s", first[0].ID, second[0].ID)
	}
}

func TestListRecordingsMemoizesDurations(t *testing.T) {
	dir := t.TempDir()
	modTime := time.Now().Add(-time.Hour)
	writeRecording(t, dir, "recording_20240101_120000.m4a", modTime)
	writeRecording(t, dir, "recording_20240102_120000.m4a", modTime)

	prober := &mockProber{duration: 3.5}
	service := NewService(dir, nil, prober)

	service.ListRecordings(context.Background())
	service.ListRecordings(context.Background())

	if prober.probeCalls != 2 {
		t.Errorf("expected one probe per file across scans, got %d calls", prober.probeCalls)
	}

	// A changed file is probed again
	newTime := modTime.Add(time.Minute)
	if err := os.Chtimes(filepath.Join(dir, "recording_20240101_120000.m4a"), newTime, newTime); err != nil {
		t.Fatalf("setting times: %v", err)
	}
	service.ListRecordings(context.Background())

	if prober.probeCalls != 3 {
		t.Errorf("expected a re-probe after modification, got %d calls", prober.probeCalls)
	}
}

func TestProbeFailureNotMemoized(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "recording_20240101_120000.m4a", time.Now().Add(-time.Hour))

	prober := &mockProber{probeErr: errors.New("no audio track")}
	service := NewService(dir, nil, prober)

	service.ListRecordings(context.Background())

	// Once the prober recovers, the next scan picks up the duration
	prober.probeErr = nil
	prober.duration = 2.5
	recordings := service.ListRecordings(context.Background())

	if recordings[0].DurationSeconds != 2.5 {
		t.Errorf("expected recovered duration 2.5, got %v", recordings[0].DurationSeconds)
	}
}

func TestVerifyStorage(t *testing.T) {
	dir := t.TempDir()

	if err := NewService(dir, nil, &mockProber{}).VerifyStorage(); err != nil {
		t.Errorf("unexpected error for reachable directory: %v", err)
	}
	if err := NewService("/nonexistent/recordings", nil, &mockProber{}).VerifyStorage(); err == nil {
		t.Error("expected error for missing directory")
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if err := NewService(file, nil, &mockProber{}).VerifyStorage(); err == nil {
		t.Error("expected error for non-directory path")
	}
}

func TestDeleteRecording(t *testing.T) {
	dir := t.TempDir()
	writeRecording(t, dir, "recording_20240101_120000.m4a", time.Now())
	location := filepath.Join(dir, "recording_20240101_120000.m4a")

	service := NewService(dir, nil, &mockProber{})

	if !service.DeleteRecording(location) {
		t.Error("expected delete to succeed")
	}
	if _, err := os.Stat(location); !os.IsNotExist(err) {
		t.Error("expected file removed")
	}
	if service.DeleteRecording(location) {
		t.Error("expected delete of missing file to report failure")
	}
}

func TestGenerateFileLocation(t *testing.T) {
	dir := t.TempDir()
	service := NewService(dir, nil, &mockProber{})

	location := service.GenerateFileLocation()

	if filepath.Dir(location) != dir {
		t.Errorf("expected location inside %s, got %s", dir, location)
	}
	pattern := regexp.MustCompile(`^recording_\d{8}_\d{6}\.m4a$`)
	if name := filepath.Base(location); !pattern.MatchString(name) {
		t.Errorf("unexpected capture file name %q", name)
	}
}

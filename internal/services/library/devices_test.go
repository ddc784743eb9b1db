package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNullRecorderCreatesCaptureFile(t *testing.T) {
	recorder := NewNullRecorder()
	location := filepath.Join(t.TempDir(), "recording_20240101_120000.m4a")

	if err := recorder.Start(location); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := recorder.Start(location); err == nil {
		t.Error("expected error starting a second capture")
	}

	if err := recorder.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(location); err != nil {
		t.Errorf("expected capture file created: %v", err)
	}

	// Stop while idle is a no-op
	if err := recorder.Stop(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNullPlayer(t *testing.T) {
	player := NewNullPlayer()

	if err := player.Play("/audio/a.m4a"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := player.Stop(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

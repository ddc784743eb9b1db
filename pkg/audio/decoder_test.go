package audio

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadPCMFile(t *testing.T) {
	samples := []int16{0, 100, -100, 32767, -32768}
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(data[2*i:], uint16(s))
	}

	path := filepath.Join(t.TempDir(), "pcm.raw")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing raw file: %v", err)
	}

	decoded, err := readPCMFile(path, "input.m4a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != len(samples) {
		t.Fatalf("expected %d samples, got %d", len(samples), len(decoded))
	}
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Errorf("sample %d differs: %d vs %d", i, decoded[i], samples[i])
		}
	}
}

func TestReadPCMFileMissing(t *testing.T) {
	_, err := readPCMFile("/nonexistent/pcm.raw", "input.m4a")

	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if derr.Operation != "pcm_read" {
		t.Errorf("unexpected operation %q", derr.Operation)
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	err := NewDecodeError("probe", "a.m4a", errors.New("exit status 1"), "no such file")

	msg := err.Error()
	if msg != "audio probe failed for a.m4a: exit status 1 (stderr: no such file)" {
		t.Errorf("unexpected message %q", msg)
	}

	bare := NewDecodeError("probe", "a.m4a", errors.New("exit status 1"), "")
	if bare.Error() != "audio probe failed for a.m4a: exit status 1" {
		t.Errorf("unexpected message %q", bare.Error())
	}
}

func TestDecodeErrorUnwrap(t *testing.T) {
	err := NewDecodeError("track_selection", "a.m4a", ErrNoAudioTrack, "")

	if !errors.Is(err, ErrNoAudioTrack) {
		t.Error("expected DecodeError to unwrap to ErrNoAudioTrack")
	}
}

func TestParseMetadata(t *testing.T) {
	output := &ffprobeOutput{}
	output.Format.Duration = "12.5"
	output.Format.Size = "1024"
	output.Format.FormatName = "mov,mp4,m4a,3gp,3g2,mj2"
	output.Streams = []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Duration   string `json:"duration"`
	}{
		{CodecType: "audio", CodecName: "aac", SampleRate: "44100", Channels: 2},
	}

	meta, err := parseMetadata(output, "a.m4a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if meta.Duration != 12.5 {
		t.Errorf("expected duration 12.5, got %v", meta.Duration)
	}
	if meta.SampleRate != 44100 {
		t.Errorf("expected sample rate 44100, got %d", meta.SampleRate)
	}
	if meta.Channels != 2 {
		t.Errorf("expected 2 channels, got %d", meta.Channels)
	}
	if meta.Codec != "aac" {
		t.Errorf("expected codec aac, got %q", meta.Codec)
	}
	if meta.Size != 1024 {
		t.Errorf("expected size 1024, got %d", meta.Size)
	}
}

func TestParseMetadataFallsBackToStreamDuration(t *testing.T) {
	output := &ffprobeOutput{}
	output.Streams = []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
		Duration   string `json:"duration"`
	}{
		{CodecType: "audio", Channels: 1, Duration: "3.25"},
	}

	meta, err := parseMetadata(output, "a.m4a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Duration != 3.25 {
		t.Errorf("expected stream duration 3.25, got %v", meta.Duration)
	}
}

package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Decoder wraps ffmpeg and ffprobe for PCM extraction and probing
type Decoder struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// NewDecoder creates a new Decoder instance
func NewDecoder(ffmpegPath, ffprobePath string, timeout time.Duration) *Decoder {
	return &Decoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (d *Decoder) ValidateBinaries() error {
	if _, err := exec.LookPath(d.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, d.ffmpegPath)
	}

	if _, err := exec.LookPath(d.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, d.ffprobePath)
	}

	return nil
}

// DecodePCM decodes the first audio track of a file into interleaved
// 16-bit signed PCM samples
func (d *Decoder) DecodePCM(ctx context.Context, inputFile string) ([]int16, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	// Probe first so a file without an audio track fails with a clear error
	meta, err := d.Probe(ctx, inputFile)
	if err != nil {
		return nil, err
	}
	if meta.Channels == 0 {
		return nil, NewDecodeError("track_selection", inputFile, ErrNoAudioTrack, "")
	}

	rawFile, err := os.CreateTemp("", "pcm_*.raw")
	if err != nil {
		return nil, NewDecodeError("temp_file_creation", inputFile, err, "")
	}
	rawPath := rawFile.Name()
	rawFile.Close()
	defer os.Remove(rawPath)

	args := []string{
		"-i", inputFile,
		"-map", "0:a:0", // First audio track only
		"-f", "s16le", // 16-bit signed little-endian
		"-acodec", "pcm_s16le",
		"-y", // Overwrite output
		rawPath,
	}

	cmd := exec.CommandContext(ctx, d.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewDecodeError("pcm_conversion", inputFile, err, stderr.String())
	}

	return readPCMFile(rawPath, inputFile)
}

// readPCMFile reads a raw s16le file into int16 samples
func readPCMFile(rawPath, inputFile string) ([]int16, error) {
	data, err := os.ReadFile(filepath.Clean(rawPath))
	if err != nil {
		return nil, NewDecodeError("pcm_read", inputFile, err, "")
	}

	samples := make([]int16, len(data)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(data[2*i : 2*i+2]))
	}

	return samples, nil
}

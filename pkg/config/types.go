package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Storage     StorageConfig     `mapstructure:"storage"`
	Sampler     SamplerConfig     `mapstructure:"sampler"`
	Transcriber TranscriberConfig `mapstructure:"transcriber"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains settings for the waveform cache database
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// StorageConfig contains filesystem layout settings
type StorageConfig struct {
	// RecordingsDir holds the recording_<timestamp>.<ext> audio files
	RecordingsDir string `mapstructure:"recordings_dir"`
	// FoldersPath is the JSON document holding folder membership
	FoldersPath string `mapstructure:"folders_path"`
	// TranscriptionsPath is the JSON document mapping recording ids to text
	TranscriptionsPath string `mapstructure:"transcriptions_path"`
	// AudioExtensions lists the file extensions treated as recordings
	AudioExtensions []string `mapstructure:"audio_extensions"`
}

// SamplerConfig contains waveform extraction settings
type SamplerConfig struct {
	FFmpegPath    string        `mapstructure:"ffmpeg_path"`
	FFprobePath   string        `mapstructure:"ffprobe_path"`
	DecodeTimeout time.Duration `mapstructure:"decode_timeout"`
	TargetSamples int           `mapstructure:"target_samples"`
}

// TranscriberConfig contains speech-to-text API settings
type TranscriberConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	Endpoint          string        `mapstructure:"endpoint"`
	Model             string        `mapstructure:"model"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	RetryDelay        time.Duration `mapstructure:"retry_delay"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

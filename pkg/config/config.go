package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("VOXNOTE")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("storage.recordings_dir") == "" {
		return fmt.Errorf("storage.recordings_dir must be configured")
	}

	// Auto-correct invalid sampler resolution
	if viper.GetInt("sampler.target_samples") <= 0 {
		viper.Set("sampler.target_samples", 100)
	}

	// Auto-correct invalid retry settings
	if viper.GetInt("transcriber.max_attempts") <= 0 {
		viper.Set("transcriber.max_attempts", 3)
	}

	if err := validateAPIKey(); err != nil {
		return err
	}

	return nil
}

// validateAPIKey warns about placeholder transcription API keys and
// rejects them in production
func validateAPIKey() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
	}

	key := viper.GetString("transcriber.api_key")
	for _, placeholder := range placeholders {
		if key == placeholder {
			if isProduction {
				return fmt.Errorf("invalid transcription API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: transcription API key is using a placeholder value")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Storage.RecordingsDir == "" {
		return fmt.Errorf("storage.recordings_dir must be configured")
	}

	if c.Sampler.TargetSamples <= 0 {
		c.Sampler.TargetSamples = 100
	}

	if c.Transcriber.MaxAttempts <= 0 {
		c.Transcriber.MaxAttempts = 3
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults (waveform cache)
	viper.SetDefault("database.path", "./data/waveforms.db")
	viper.SetDefault("database.verbose", false)

	// Storage defaults
	viper.SetDefault("storage.recordings_dir", "./data/recordings")
	viper.SetDefault("storage.folders_path", "./data/folders.json")
	viper.SetDefault("storage.transcriptions_path", "./data/transcriptions.json")
	viper.SetDefault("storage.audio_extensions", []string{".m4a"})

	// Sampler defaults
	viper.SetDefault("sampler.ffmpeg_path", "ffmpeg")
	viper.SetDefault("sampler.ffprobe_path", "ffprobe")
	viper.SetDefault("sampler.decode_timeout", 2*time.Minute)
	viper.SetDefault("sampler.target_samples", 100)

	// Transcriber defaults
	viper.SetDefault("transcriber.endpoint", "https://api.openai.com/v1/audio/transcriptions")
	viper.SetDefault("transcriber.model", "whisper-1")
	viper.SetDefault("transcriber.timeout", 30*time.Second)
	viper.SetDefault("transcriber.max_attempts", 3)
	viper.SetDefault("transcriber.retry_delay", 2*time.Second)
	viper.SetDefault("transcriber.requests_per_minute", 60)
}

package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/voxnote/memo-api/api"
	"github.com/voxnote/memo-api/api/types"
	"github.com/voxnote/memo-api/internal/database"
	"github.com/voxnote/memo-api/internal/models"
	"github.com/voxnote/memo-api/internal/services/folders"
	"github.com/voxnote/memo-api/internal/services/library"
	"github.com/voxnote/memo-api/internal/services/recordings"
	"github.com/voxnote/memo-api/internal/services/transcriber"
	"github.com/voxnote/memo-api/internal/services/transcripts"
	"github.com/voxnote/memo-api/internal/services/waveforms"
	"github.com/voxnote/memo-api/pkg/audio"
	"github.com/voxnote/memo-api/pkg/config"
)

var (
	serverHost       string
	serverPort       int
	preloadWaveforms bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Voice Memo API server with the configured settings.

The server scans the recordings directory, loads the folder and
transcription documents, and serves the library over HTTP.

Example:
  memo-api serve
  memo-api serve --port 9090
  memo-api serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
	serveCmd.Flags().BoolVar(&preloadWaveforms, "preload-waveforms", false, "warm the waveform cache for every recording at startup")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverHost == "" {
		serverHost = cfg.Server.Host
	}
	if serverPort == 0 {
		serverPort = cfg.Server.Port
	}

	deps, db, err := buildDependencies(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[DEBUG] Failed to close database: %v", err)
		}
	}()

	address := fmt.Sprintf("%s:%d", serverHost, serverPort)
	server := api.NewServer(address)
	server.SetDependencies(deps)
	server.SetDatabase(db)
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	if preloadWaveforms {
		go deps.Library.PreloadWaveforms(context.Background())
	}

	fmt.Printf("Starting Voice Memo API server on %s\n", address)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Printf("Server is ready to handle requests at %s\n", address)

	select {
	case <-stop:
		fmt.Println("\nShutting down server...")
	case err := <-serverErr:
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		fmt.Println("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server forced to shutdown: %v\n", err)
		return err
	}

	fmt.Println("Server gracefully stopped")
	return nil
}

// buildDependencies constructs every service and joins them into the
// handler dependency set
func buildDependencies(cfg *config.Config) (*types.Dependencies, *database.DB, error) {
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.AutoMigrate(&models.Waveform{}); err != nil {
		return nil, nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	decoder := audio.NewDecoder(cfg.Sampler.FFmpegPath, cfg.Sampler.FFprobePath, cfg.Sampler.DecodeTimeout)
	if err := decoder.ValidateBinaries(); err != nil {
		// Waveform extraction degrades to errors per request; the rest of
		// the API keeps working
		log.Printf("[DEBUG] Audio binaries unavailable, waveform extraction disabled: %v", err)
	}

	waveformService := waveforms.NewService(decoder, waveforms.NewRepository(db.DB), cfg.Sampler.TargetSamples)

	recordingStore := recordings.NewService(cfg.Storage.RecordingsDir, cfg.Storage.AudioExtensions, decoder)

	folderStore, err := folders.NewService(cfg.Storage.FoldersPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load folder store: %w", err)
	}

	transcriptStore := transcripts.NewService(cfg.Storage.TranscriptionsPath)

	transcriptionClient := transcriber.NewClient(transcriber.Config{
		APIKey:            cfg.Transcriber.APIKey,
		Endpoint:          cfg.Transcriber.Endpoint,
		Model:             cfg.Transcriber.Model,
		Timeout:           cfg.Transcriber.Timeout,
		MaxAttempts:       cfg.Transcriber.MaxAttempts,
		RetryDelay:        cfg.Transcriber.RetryDelay,
		RequestsPerMinute: cfg.Transcriber.RequestsPerMinute,
	})

	libraryService := library.NewService(
		recordingStore,
		folderStore,
		transcriptStore,
		transcriptionClient,
		waveformService,
		library.NewNullRecorder(),
		library.NewNullPlayer(),
	)

	return &types.Dependencies{
		DB:              db,
		Library:         libraryService,
		RecordingStore:  recordingStore,
		FolderStore:     folderStore,
		TranscriptStore: transcriptStore,
		WaveformService: waveformService,
	}, db, nil
}

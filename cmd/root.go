package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/voxnote/memo-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memo-api",
	Short: "Voice Memo API server",
	Long: `Voice Memo API - A voice memo recording and organization API

This API manages a library of voice recordings on disk, organizes them
into folders, extracts waveform peak envelopes for display, and sends
recordings to a Whisper-style endpoint for transcription.

Features:
  • Recording capture and playback control
  • Folder organization with default Personal, Work, and Drafts folders
  • Waveform peak extraction with an in-memory and durable cache
  • Speech-to-text transcription with retry handling`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	// Version and help don't need config
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"trial-screening/pkg/clients/segment"
	"trial-screening/pkg/config"
	"trial-screening/pkg/logging"
	"trial-screening/pkg/wizard"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	// The terminal belongs to the UI, so logs only go to a file when asked
	logger := logging.Discard()
	if path := os.Getenv("SCREENER_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = logging.NewWithWriter(f, cfg.LogLevel)
	}

	var notifier wizard.Notifier = segment.NewLogNotifier(logger)
	if cfg.SegmentWriteKey != "" {
		notifier = segment.NewNotifier(segment.NewClient(cfg.SegmentWriteKey, cfg.SegmentEndpoint), uuid.NewString())
	}

	ctrl := wizard.NewController(notifier, wizard.WithLogger(logger))
	if _, err := tea.NewProgram(newModel(ctrl)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error running screener: %v\n", err)
		os.Exit(1)
	}
}

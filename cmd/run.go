package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/app"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/store"
)

// runApp opens the store, builds the service and launches the TUI. Logs go
// to a file because the terminal belongs to the UI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dir, err := store.DataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	logger, logFile, err := logging.NewFile(dir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	svc, be, err := openService(logging.IntoContext(ctx, logger), cfg, nil)
	if err != nil {
		return err
	}
	defer be.Close()

	return app.Run(app.Options{
		Service:  svc,
		Provider: cfg.LLM.Provider,
		Logger:   logger,
	})
}

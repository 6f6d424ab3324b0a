package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/abhisek/quizbank/internal/trivia"
)

var rootCmd = &cobra.Command{
	Use:          "quizbank",
	Short:        "AI trivia quiz generator",
	Long:         "quizbank generates multiple-choice trivia with an LLM, keeps a per-level question bank and lets you play it in the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZBANK_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional .env file to load")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides QUIZBANK_LOG_LEVEL)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(autofillCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db / QUIZBANK_DB first,
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// backend is an opened KV store plus the event log that goes with it.
type backend struct {
	kv     store.KV
	events store.EventRepo
}

func (b backend) Close() error { return b.kv.Close() }

func openBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	switch cfg.Store {
	case "redis":
		kv, err := store.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return backend{}, fmt.Errorf("open redis: %w", err)
		}
		return backend{kv: kv, events: store.NopEventRepo{}}, nil
	case "memory":
		return backend{kv: store.NewMemoryKV(), events: store.NopEventRepo{}}, nil
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return backend{}, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return backend{}, fmt.Errorf("open store: %w", err)
	}
	return backend{kv: st, events: st.EventRepo()}, nil
}

// openEventStore opens the SQLite store for the llm inspection commands.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// openService builds the trivia service over the configured backend, logging
// through the logger carried by ctx. The caller closes the returned backend.
func openService(ctx context.Context, cfg *config.Config, m trivia.Metrics) (*trivia.Service, backend, error) {
	be, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, backend{}, err
	}
	deps := trivia.Deps{
		KV:     be.kv,
		Events: be.events,
		Logger: logging.FromContext(ctx),
	}
	if m != nil {
		deps.Metrics = m
	}
	return trivia.New(ctx, cfg, deps), be, nil
}

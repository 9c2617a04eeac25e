package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gyaneshwarpardhi/wirelab/internal/config"
	"github.com/gyaneshwarpardhi/wirelab/internal/level"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	// Optional; variables already set in the environment take precedence.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "wirelab",
		Short:        "Wiring trainer: circuit evaluation service and tools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(opts.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", getEnv("WIRELAB_CONFIG", "configs/levels.yaml"), "Path to the level catalog YAML")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", getEnv("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	root.AddCommand(newServeCmd(opts), newLevelsCmd(opts), newCheckCmd(opts))
	return root
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func setupLogger(lvl string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadCatalog reads, validates and compiles the catalog at path.
func loadCatalog(path string) (*config.Loader, *level.Catalog, error) {
	loader, err := config.NewLoader(path)
	if err != nil {
		return nil, nil, err
	}
	cfg := loader.Config()
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}
	cat, err := level.Build(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}
	return loader, cat, nil
}

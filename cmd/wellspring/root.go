package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/serenelab/wellspring"
	"github.com/serenelab/wellspring/internal/config"
	"github.com/serenelab/wellspring/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "wellspring",
	Short: "Wellspring is a multi-agent wellness assistant",
	Long:  `Wellspring bundles a meal planner, a virtual physician, and a mental wellness companion behind one CLI.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "wellspring.yaml", "Path to the configuration file")
}

// loadConfig resolves the effective configuration: .env, then the YAML
// file, then environment overrides.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	_ = godotenv.Load()

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}
	cfg = cfg.FromEnv()

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))
	return cfg, logger, nil
}

// newAssistant builds the Assistant from the resolved configuration.
func newAssistant(cmd *cobra.Command) (*wellspring.Assistant, config.Config, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, config.Config{}, err
	}
	a, err := wellspring.New(cfg, wellspring.WithLogger(logger))
	if err != nil {
		return nil, config.Config{}, err
	}
	return a, cfg, nil
}

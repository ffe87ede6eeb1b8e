package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "gherk",
	Short: "gherk — Gherkin feature file toolkit",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads gherk.yml from the working directory, falling back to
// defaults when absent.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.FileName)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// requireProject loads the config and verifies the features directory
// exists.
func requireProject() (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.FeaturesDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("run `gherk init` first")
	}
	return cfg, nil
}

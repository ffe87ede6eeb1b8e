package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/chriserin/gherk/internal/gherkin"
)

// FileName is the project configuration file looked up in the working
// directory.
const FileName = "gherk.yml"

type Config struct {
	FeaturesDir string `yaml:"features_dir"`
	DefaultTags string `yaml:"default_tags"`
	Lint        Lint   `yaml:"lint"`
}

type Lint struct {
	AllowEmptyFeatures bool `yaml:"allow_empty_features"`
}

// Default returns the configuration used when no gherk.yml exists.
func Default() *Config {
	return &Config{
		FeaturesDir: "features",
	}
}

// Load reads path if it exists, layering it over Default. A missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values, including that default_tags parses as a
// tag expression.
func (c *Config) Validate() error {
	if c.FeaturesDir == "" {
		return fmt.Errorf("features_dir must not be empty")
	}
	if c.DefaultTags != "" {
		if _, err := gherkin.ParseTagExpression(c.DefaultTags); err != nil {
			return fmt.Errorf("default_tags: %w", err)
		}
	}
	return nil
}

// DBPath returns the registry database path inside the features dir.
func (c *Config) DBPath() string {
	return filepath.Join(c.FeaturesDir, "gherk.db")
}

// Write marshals the config to path.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

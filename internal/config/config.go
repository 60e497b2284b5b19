// Package config loads and persists the application configuration as a
// YAML file in the library root.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name inside the library root
const FileName = "config.yaml"

// Config holds the application settings
type Config struct {
	// SourcePresentationID is the document templates are captured from and
	// decks are copied from
	SourcePresentationID string `yaml:"source_presentation_id"`

	// OutputTitle is the default title for generated presentations
	OutputTitle string `yaml:"output_title"`

	// PlannerConfigPath is where the planner agent config is exported
	PlannerConfigPath string `yaml:"planner_config_path"`

	// PlannerName is the agent name recorded in the exported config
	PlannerName string `yaml:"planner_name"`
}

// DefaultConfig creates a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		OutputTitle:       "Generated Presentation",
		PlannerConfigPath: "deck_planner.yaml",
		PlannerName:       "deck_planner",
	}
}

// LibraryDir resolves the template library root: the DECKGEN_DIR
// environment variable when set, otherwise ~/.deckgen
func LibraryDir() string {
	if dir := os.Getenv("DECKGEN_DIR"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".deckgen"
	}
	return filepath.Join(homeDir, ".deckgen")
}

// Load reads the configuration from the library root, falling back to
// defaults when no file exists yet
func Load(libraryDir string) (*Config, error) {
	path := filepath.Join(libraryDir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the library root atomically
func (c *Config) Save(libraryDir string) error {
	if err := os.MkdirAll(libraryDir, 0755); err != nil {
		return fmt.Errorf("failed to create library directory: %w", err)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	path := filepath.Join(libraryDir, FileName)
	if err := atomic.WriteFile(path, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

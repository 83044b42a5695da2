// Package config loads the world generator's settings.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/procworld/internal/database"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PROCWORLD_"

// WorldConfig holds generator-wide configuration settings.
type WorldConfig struct {
	// DataDir overrides the embedded data tables. Empty means embedded.
	DataDir string `yaml:"data_dir" env:"DATA_DIR"`

	// StaticRooms is an optional YAML file of hand-authored rooms.
	StaticRooms string `yaml:"static_rooms" env:"STATIC_ROOMS"`

	Store      database.Config  `yaml:"store" envPrefix:"STORE_"`
	Generation GenerationConfig `yaml:"generation"`
}

// GenerationConfig holds settings that shape generation without changing
// what a coordinate produces.
type GenerationConfig struct {
	// PregenerateAdjacent generates the rooms next to every looked-up room
	// so its exits can name them.
	PregenerateAdjacent bool `yaml:"pregenerate_adjacent" env:"PREGENERATE"`

	// MaxTemplateDepth limits nested template references.
	MaxTemplateDepth int `yaml:"max_template_depth" env:"MAX_TEMPLATE_DEPTH"`
}

// DefaultConfig returns a WorldConfig using embedded data and no store.
func DefaultConfig() *WorldConfig {
	return &WorldConfig{
		Store: database.DefaultConfig(),
		Generation: GenerationConfig{
			PregenerateAdjacent: true,
			MaxTemplateDepth:    10,
		},
	}
}

// LoadConfig loads configuration from a YAML file, then applies
// PROCWORLD_* environment overrides. A missing file yields the defaults.
func LoadConfig(path string) (*WorldConfig, error) {
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return config, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return config, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for values generation cannot use.
func (c *WorldConfig) Validate() error {
	if c.Generation.MaxTemplateDepth < 1 {
		return fmt.Errorf("generation.max_template_depth must be at least 1, got %d", c.Generation.MaxTemplateDepth)
	}
	if c.DataDir != "" {
		info, err := os.Stat(c.DataDir)
		if err != nil {
			return fmt.Errorf("data_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("data_dir %s is not a directory", c.DataDir)
		}
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// Package logger is the process-wide structured logger. Generation code
// logs through the package-level helpers so it never has to carry a
// logger value around.
package logger

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds logging configuration
type Config struct {
	Level          string `yaml:"level" env:"LOG_LEVEL"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format" env:"LOG_CONSOLE_FORMAT"`
	FileEnabled    bool   `yaml:"file_enabled" env:"LOG_FILE_ENABLED"`
	FilePath       string `yaml:"file_path" env:"LOG_FILE_PATH"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/worldgen.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// loggingFile wraps the Config for YAML parsing
type loggingFile struct {
	Logging *Config `yaml:"logging"`
}

// LoadConfig loads logging configuration from the logging: block of a YAML
// file, then applies environment variable overrides. A missing or
// unreadable file leaves the defaults in place.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Decoding into the defaults keeps every key the file omits
			if err := yaml.Unmarshal(data, &loggingFile{Logging: &config}); err != nil {
				config = DefaultConfig()
			}
		}
	}

	if err := env.Parse(&config); err != nil {
		return config, fmt.Errorf("failed to parse logging environment: %w", err)
	}
	return config, nil
}

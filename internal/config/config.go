// Package config provides unified configuration loading for montyhall.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnneSpitz/monty-hall-simulator/internal/constants"
	"github.com/AnneSpitz/monty-hall-simulator/internal/game"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config contains all montyhall configuration settings.
type Config struct {
	// Simulation contains the defaults for a simulation run.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Logging contains settings for operational logging and trial traces.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig holds the run parameters the CLI falls back to when a
// flag is not given.
type SimulationConfig struct {
	// Trials is the number of independent games per run.
	Trials int `json:"trials" yaml:"trials" env:"TRIALS"`

	// Doors is the number of doors per game (at least 3).
	Doors int `json:"doors" yaml:"doors" env:"DOORS"`

	// Switch selects the switch strategy instead of stay.
	Switch bool `json:"switch" yaml:"switch" env:"SWITCH"`

	// Seed makes runs reproducible. 0 draws a fresh seed per run.
	Seed uint64 `json:"seed,omitempty" yaml:"seed,omitempty" env:"SEED"`

	// Workers is the number of goroutines sharing the trials.
	Workers int `json:"workers" yaml:"workers" env:"WORKERS"`
}

// LoggingConfig configures montyhall's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables per-trial traces in trials.jsonl.
	// "trace" additionally echoes every trial to stderr.
	Level string `json:"level" yaml:"level" env:"LOG_LEVEL"`

	// Dir is where trials.jsonl is written. Empty means ~/.montyhall.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" env:"LOG_DIR"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Trials:  constants.DefaultTrials,
			Doors:   constants.DefaultDoors,
			Switch:  false,
			Workers: constants.DefaultWorkers,
		},
		Logging: LoggingConfig{
			Level: constants.DefaultLogLevel,
		},
	}
}

// DefaultPath returns ~/.montyhall/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, constants.AppDirName, constants.ConfigFileName), nil
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.montyhall/config.yaml -> environment variables
func Load() (*Config, error) {
	config := Default()

	if configPath, err := DefaultPath(); err == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides config with any MONTYHALL_* environment variables.
func ApplyEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: constants.EnvPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating its directory.
func Save(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// TraceDir returns the directory trial traces are written to.
func (c *Config) TraceDir() (string, error) {
	if c.Logging.Dir != "" {
		return c.Logging.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(homeDir, constants.AppDirName), nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Simulation.Trials < 1 {
		return fmt.Errorf("%w: trials must be at least 1, got %d", game.ErrInvalidConfiguration, c.Simulation.Trials)
	}

	if c.Simulation.Doors < game.MinDoors {
		return fmt.Errorf("%w: doors must be at least %d, got %d", game.ErrInvalidConfiguration, game.MinDoors, c.Simulation.Doors)
	}

	if c.Simulation.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", game.ErrInvalidConfiguration, c.Simulation.Workers)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("%w: invalid log level: %s (valid: info, debug, trace, or empty for default)", game.ErrInvalidConfiguration, c.Logging.Level)
	}

	return nil
}

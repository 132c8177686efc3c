package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds extension configuration.
type Config struct {
	Arena     ArenaConfig     `json:"arena"`
	Log       LogConfig       `json:"log"`
	Functions FunctionsConfig `json:"functions"`
}

// ArenaConfig controls parse-time allocation.
type ArenaConfig struct {
	// InitialBlockSize is the byte size of the first arena block.
	// Further blocks double in size as the arena grows.
	InitialBlockSize int `json:"initial_block_size"`
}

// LogConfig controls extension logging.
type LogConfig struct {
	Level string `json:"level"` // error, warn, info, debug
}

// FunctionsConfig toggles optional function groups.
type FunctionsConfig struct {
	// Geodesic enables the spheroid measure functions (st_area_spheroid).
	Geodesic bool `json:"geodesic"`
	// Simplify enables st_simplify.
	Simplify bool `json:"simplify"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Arena: ArenaConfig{
			InitialBlockSize: 4096,
		},
		Log: LogConfig{
			Level: "info",
		},
		Functions: FunctionsConfig{
			Geodesic: true,
			Simplify: true,
		},
	}
}

// LoadConfig reads a JSON config file. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Arena.InitialBlockSize <= 0 {
		cfg.Arena.InitialBlockSize = DefaultConfig().Arena.InitialBlockSize
	}
	return cfg, nil
}

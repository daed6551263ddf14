package game

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvSeed         = "DUNGEONGEN_SEED"
	EnvLevel        = "DUNGEONGEN_LEVEL"
	EnvAddr         = "DUNGEONGEN_ADDR"
	EnvTelemetry    = "DUNGEONGEN_TELEMETRY"
	EnvLogVerbosity = "DUNGEONGEN_LOG_VERBOSITY"
	EnvMaxTries     = "DUNGEONGEN_MAX_TRIES"
)

// DefaultMaxTries bounds regeneration attempts per level.
const DefaultMaxTries = 8

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// Level is the ID of the first level shown. Empty starts at the shallowest.
	Level string
	// Addr is the listen address for the map server.
	Addr string

	Telemetry    bool
	LogVerbosity int
	// MaxTries caps generation attempts before a level is given up on.
	MaxTries uint
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8080",
		MaxTries: DefaultMaxTries,
	}
}

// ConfigFromEnv overlays the DUNGEONGEN_* environment variables on the
// defaults. Unset variables keep their default.
func ConfigFromEnv() (Config, error) {
	return configFrom(os.LookupEnv)
}

func configFrom(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvLevel); ok {
		cfg.Level = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvTelemetry); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTelemetry, err)
		}
		cfg.Telemetry = enabled
	}
	if v, ok := lookup(EnvLogVerbosity); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvLogVerbosity, err)
		}
		cfg.LogVerbosity = n
	}
	if v, ok := lookup(EnvMaxTries); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return cfg, fmt.Errorf("%s: want a positive integer, got %q", EnvMaxTries, v)
		}
		cfg.MaxTries = uint(n)
	}
	return cfg, nil
}

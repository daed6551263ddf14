package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := configFrom(lookupFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Zero(t, cfg.Seed, "zero seed means random")
}

func TestConfigFromEnvOverrides(t *testing.T) {
	cfg, err := configFrom(lookupFrom(map[string]string{
		EnvSeed:         "12345",
		EnvLevel:        "catacombs",
		EnvAddr:         "127.0.0.1:9000",
		EnvTelemetry:    "true",
		EnvLogVerbosity: "2",
		EnvMaxTries:     "3",
	}))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Seed:         12345,
		Level:        "catacombs",
		Addr:         "127.0.0.1:9000",
		Telemetry:    true,
		LogVerbosity: 2,
		MaxTries:     3,
	}, cfg)
}

func TestConfigFromEnvErrors(t *testing.T) {
	for key, value := range map[string]string{
		EnvSeed:         "abc",
		EnvTelemetry:    "maybe",
		EnvLogVerbosity: "loud",
		EnvMaxTries:     "0",
	} {
		t.Run(key, func(t *testing.T) {
			_, err := configFrom(lookupFrom(map[string]string{key: value}))
			assert.ErrorContains(t, err, key)
		})
	}
}

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int           `env:"TEST_HTTP_PORT" envDefault:"8080"`
	LogLevel string        `env:"TEST_LOG_LEVEL" envDefault:"info"`
	Brokers  []string      `env:"TEST_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	TTL      time.Duration `env:"TEST_TTL" envDefault:"168h"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, 168*time.Hour, cfg.TTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("TEST_HTTP_PORT", "9001")
	t.Setenv("TEST_BROKERS", "k1:9092,k2:9092")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("TEST_HTTP_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

type validatedConfig struct {
	Port int `env:"TEST_VALIDATED_PORT" envDefault:"8080"`
}

func (c *validatedConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port out of range")
	}
	return nil
}

func TestLoad_RunsValidator(t *testing.T) {
	var cfg validatedConfig
	require.NoError(t, Load(&cfg))

	t.Setenv("TEST_VALIDATED_PORT", "70000")
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port     int           `env:"TEST_CFG_PORT" envDefault:"8080"`
	Host     string        `env:"TEST_CFG_HOST" envDefault:"localhost"`
	LogLevel string        `env:"TEST_CFG_LOG_LEVEL" envDefault:"info"`
	Debug    bool          `env:"TEST_CFG_DEBUG" envDefault:"false"`
	CacheTTL time.Duration `env:"TEST_CFG_CACHE_TTL" envDefault:"30s"`
	Brokers  []string      `env:"TEST_CFG_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Debug)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_DEBUG", "true")
	t.Setenv("TEST_CFG_BROKERS", "a:9092,b:9092")

	var cfg testConfig
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Brokers)
}

type requiredConfig struct {
	APIKey string `env:"TEST_CFG_API_KEY,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_DOTENV_KEY=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TEST_CFG_DOTENV_KEY") })

	var cfg struct {
		Key string `env:"TEST_CFG_DOTENV_KEY"`
	}
	require.NoError(t, Load(&cfg, path))
	assert.Equal(t, "from-file", cfg.Key)
}

func TestLoad_DotenvDoesNotOverrideEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_HOST=from-file\n"), 0o600))
	t.Setenv("TEST_CFG_HOST", "from-env")

	var cfg testConfig
	require.NoError(t, Load(&cfg, path))
	assert.Equal(t, "from-env", cfg.Host)
}

func TestLoad_MissingDotenvIsSkipped(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Load(&cfg, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, 8080, cfg.Port)
}

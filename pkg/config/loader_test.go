package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/questkit/pkg/config"
)

type gatewayConfig struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	Retries int           `env:"API_RETRIES" envDefault:"0"`
}

type requiredConfig struct {
	Required string `env:"QK_REQUIRED_VALUE,required"`
}

type fileConfig struct {
	Backend string `env:"QK_FILE_BACKEND"`
	Path    string `env:"QK_FILE_PATH"`
}

func TestLoad_Success(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("API_TIMEOUT", "3s")

	var cfg gatewayConfig
	err := config.Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_DefaultValues(t *testing.T) {
	os.Unsetenv("API_BASE_URL")
	os.Unsetenv("API_TIMEOUT")

	var cfg gatewayConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoad_ReparsesEachCall(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://first.example.com")
	var first gatewayConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("API_BASE_URL", "https://second.example.com")
	var second gatewayConfig
	require.NoError(t, config.Load(&second))

	assert.Equal(t, "https://first.example.com", first.BaseURL)
	assert.Equal(t, "https://second.example.com", second.BaseURL)
}

func TestLoad_Prefix(t *testing.T) {
	t.Setenv("QUEST_API_BASE_URL", "https://prefixed.example.com")

	var cfg gatewayConfig
	require.NoError(t, config.Load(&cfg, config.WithPrefix("QUEST_")))

	assert.Equal(t, "https://prefixed.example.com", cfg.BaseURL)
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("QK_REQUIRED_VALUE")

	var cfg requiredConfig
	err := config.Load(&cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoad_EnvFiles(t *testing.T) {
	os.Unsetenv("QK_FILE_BACKEND")
	os.Unsetenv("QK_FILE_PATH")
	t.Cleanup(func() {
		os.Unsetenv("QK_FILE_BACKEND")
		os.Unsetenv("QK_FILE_PATH")
	})

	dir := t.TempDir()
	path := filepath.Join(dir, ".env.test")
	require.NoError(t, os.WriteFile(path, []byte("QK_FILE_BACKEND=file\nQK_FILE_PATH=\"/tmp/session.json\"\n"), 0o600))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg, config.WithEnvFiles(path)))

	assert.Equal(t, "file", cfg.Backend)
	assert.Equal(t, "/tmp/session.json", cfg.Path)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	var cfg fileConfig
	err := config.Load(&cfg, config.WithEnvFiles(filepath.Join(t.TempDir(), "nope.env")))

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *gatewayConfig
	err := config.Load(cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoad_Panics(t *testing.T) {
	os.Unsetenv("QK_REQUIRED_VALUE")

	assert.Panics(t, func() {
		var cfg requiredConfig
		config.MustLoad(&cfg)
	})
}

package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"income-estimator/domain"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("RATE_API_KEY", "secret")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://v6.exchangerate-api.com/v6", cfg.RateApi.URL)
	assert.Equal(t, "secret", cfg.RateApi.Key)
	assert.Equal(t, domain.USD, cfg.RateApi.Base())
	assert.Equal(t, domain.RSD, cfg.RateApi.Local())
	assert.Equal(t, 10*time.Second, cfg.RateApi.Timeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("RATE_LOCAL_CURRENCY", "eur")
	t.Setenv("RATE_FETCH_TIMEOUT", "2s")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, domain.Currency("EUR"), cfg.RateApi.Local())
	assert.Equal(t, 2*time.Second, cfg.RateApi.Timeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
http_addr: ":7070"
log_level: debug
rate_api:
  url: http://localhost:1234
  key: filekey
  base_currency: USD
  local_currency: HUF
  timeout: 3s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv(PathEnv, path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:1234", cfg.RateApi.URL)
	assert.Equal(t, "filekey", cfg.RateApi.Key)
	assert.Equal(t, domain.Currency("HUF"), cfg.RateApi.Local())
	assert.Equal(t, 3*time.Second, cfg.RateApi.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("RATE_LOCAL_CURRENCY", "DINAR")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()

	assert.Error(t, err)
}

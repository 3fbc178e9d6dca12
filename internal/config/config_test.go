package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every JEWELPANEL_ env var that Load() reads.
var allConfigKeys = []string{
	"JEWELPANEL_LISTEN_ADDR",
	"JEWELPANEL_DB_PATH",
	"JEWELPANEL_APP_URL",
	"JEWELPANEL_CATALOG_API_URL",
	"JEWELPANEL_CATALOG_API_TOKEN",
	"JEWELPANEL_CATEGORY_PARENT_ID",
	"JEWELPANEL_SESSION_SECRET",
	"JEWELPANEL_SESSION_TTL",
	"JEWELPANEL_SIGNOUT_DELAY",
	"JEWELPANEL_ATTACHMENT_BUCKET",
	"JEWELPANEL_S3_ENDPOINT",
	"JEWELPANEL_AWS_REGION",
	"JEWELPANEL_S3_USE_PATH_STYLE",
	"JEWELPANEL_S3_ACCESS_KEY",
	"JEWELPANEL_S3_SECRET_KEY",
}

// isolateConfigEnv saves and unsets all JEWELPANEL_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "https://catalog.risinglab.com/api")
	t.Setenv("JEWELPANEL_CATALOG_API_TOKEN", "tok")
	t.Setenv("JEWELPANEL_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("JEWELPANEL_DB_PATH", "/tmp/test.db")
	t.Setenv("JEWELPANEL_APP_URL", "https://admin.risinglab.com/")
	t.Setenv("JEWELPANEL_SESSION_TTL", "1h")
	t.Setenv("JEWELPANEL_SIGNOUT_DELAY", "0s")
	t.Setenv("JEWELPANEL_ATTACHMENT_BUCKET", "staging")
	t.Setenv("JEWELPANEL_S3_USE_PATH_STYLE", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://catalog.risinglab.com/api", cfg.CatalogAPIURL)
	assert.Equal(t, "tok", cfg.CatalogAPIToken)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "https://admin.risinglab.com", cfg.AppURL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.SignOutDelay)
	assert.True(t, cfg.UsesS3())
	assert.True(t, cfg.S3UsePathStyle)
	assert.True(t, cfg.SecureCookies())
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "http://localhost:4000/api")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "jewelpanel.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.SignOutDelay)
	assert.Nil(t, cfg.SessionSecret)
	assert.False(t, cfg.UsesS3())
	assert.False(t, cfg.SecureCookies())
}

func TestLoad_MissingCatalogURL(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JEWELPANEL_CATALOG_API_URL")
}

func TestLoad_RelativeCatalogURL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "/api")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absolute")
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"JEWELPANEL_SESSION_TTL", "JEWELPANEL_SIGNOUT_DELAY"} {
		t.Run(key, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv("JEWELPANEL_CATALOG_API_URL", "http://localhost:4000/api")
			t.Setenv(key, "not-a-duration")

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_NonPositiveTTL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "http://localhost:4000/api")
	t.Setenv("JEWELPANEL_SESSION_TTL", "0s")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidPathStyle(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "http://localhost:4000/api")
	t.Setenv("JEWELPANEL_S3_USE_PATH_STYLE", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JEWELPANEL_S3_USE_PATH_STYLE")
}

func TestLoad_SessionSecret_Valid(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "http://localhost:4000/api")
	// 64 hex chars = 32 bytes
	t.Setenv("JEWELPANEL_SESSION_SECRET", "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Len(t, cfg.SessionSecret, 32)
}

func TestLoad_SessionSecret_TooShort(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "http://localhost:4000/api")
	t.Setenv("JEWELPANEL_SESSION_SECRET", "deadbeef")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JEWELPANEL_SESSION_SECRET")
}

func TestLoad_SessionSecret_NotHex(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("JEWELPANEL_CATALOG_API_URL", "http://localhost:4000/api")
	t.Setenv("JEWELPANEL_SESSION_SECRET", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JEWELPANEL_SESSION_SECRET")
}

func TestLoadEnvFile(t *testing.T) {
	isolateConfigEnv(t)

	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")), "missing file is ignored")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"JEWELPANEL_CATALOG_API_URL=http://from-file/api\nJEWELPANEL_DB_PATH=file.db\n"), 0o600))
	t.Setenv("JEWELPANEL_DB_PATH", "env.db")

	require.NoError(t, LoadEnvFile(path))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-file/api", cfg.CatalogAPIURL)
	assert.Equal(t, "env.db", cfg.DBPath, "existing variables win over the file")
}

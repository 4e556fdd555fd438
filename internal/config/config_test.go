package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-docadmin/internal/config"
	"github.com/stretchr/testify/require"
)

func TestEnvVars_Defaults(t *testing.T) {
	for _, v := range []string{"APP_NAME", "ENV", "LOG_LEVEL", "API_BASE_URL", "DATA_FOLDER"} {
		t.Setenv(v, "")
	}
	c := config.New(filepath.Join(t.TempDir(), "missing.env"))

	require.Equal(t, "docadmin", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "info", c.GetLogLevel())
	require.Equal(t, "http://localhost:8080", c.GetBaseURL())
	require.Equal(t, "./data", c.GetDataFolder())
}

func TestEnvVars_BaseURLTrimsSlash(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://docs.example.com/")
	require.Equal(t, "https://docs.example.com", config.EnvVars{}.GetBaseURL())
}

func TestGateway_Durations(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("REQUEST_TIMEOUT", "")
		t.Setenv("REFRESH_TIMEOUT", "")
		require.Equal(t, 30*time.Second, config.Gateway{}.GetRequestTimeout())
		require.Equal(t, 15*time.Second, config.Gateway{}.GetRefreshTimeout())
	})

	t.Run("parsed", func(t *testing.T) {
		t.Setenv("REQUEST_TIMEOUT", "2m")
		require.Equal(t, 2*time.Minute, config.Gateway{}.GetRequestTimeout())
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv("REFRESH_TIMEOUT", "soon")
		require.Equal(t, 15*time.Second, config.Gateway{}.GetRefreshTimeout())
	})
}

func TestStorage_Defaults(t *testing.T) {
	t.Setenv("SESSION_STORE", "")
	t.Setenv("SESSION_FILE", "")
	t.Setenv("DATA_FOLDER", "/var/lib/docadmin")
	t.Setenv("REDIS_DB", "x")

	s := config.Storage{}
	require.Equal(t, config.StoreFile, s.GetSessionStore())
	require.Equal(t, filepath.Join("/var/lib/docadmin", "session.yaml"), s.GetSessionFile())
	require.Equal(t, 0, s.GetRedisDB())
	require.Equal(t, "docadmin", s.GetSessionNamespace())
}

func TestNew_LoadsDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("APP_NAME=from-file\nSESSION_STORE=memory\n"), 0o600))

	t.Setenv("APP_NAME", "")
	t.Setenv("SESSION_STORE", "redis")
	os.Unsetenv("APP_NAME")

	c := config.New(envFile)
	require.Equal(t, "from-file", c.GetAppName())
	// environment wins over the file
	require.Equal(t, config.StoreRedis, c.GetSessionStore())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func restore() {
	loadDotenv = func(...string) error { return nil }
	readFile = os.ReadFile
}

var optionalKeys = []string{
	"CONFIG_FILE", "REDIS_PASSWORD", "REDIS_DB", "TOKEN_TTL", "PORT", "WORKER_COUNT", "STATIC_DIR",
	"LOGIN_RATE", "LOGIN_BURST", "NEWS_CACHE_TTL", "ADMIN_USERNAME", "ADMIN_EMAIL", "ADMIN_PASSWORD", "DEBUG",
}

func setRequired(t *testing.T) {
	for _, key := range optionalKeys {
		t.Setenv(key, "")
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/college")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_SECRET", "0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	restore()
	t.Cleanup(restore)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, 1, cfg.WorkerCount)
	require.Equal(t, "public", cfg.StaticDir)
	require.Equal(t, float64(1), cfg.LoginRate)
	require.Equal(t, 5, cfg.LoginBurst)
	require.Equal(t, time.Minute, cfg.NewsCacheTTL)
	require.False(t, cfg.HasAdminBootstrap())
}

func TestLoadEnvOverrides(t *testing.T) {
	restore()
	t.Cleanup(restore)
	setRequired(t)
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("LOGIN_RATE", "0.5")
	t.Setenv("LOGIN_BURST", "3")
	t.Setenv("NEWS_CACHE_TTL", "5m")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.False(t, cfg.HasAdminBootstrap())
	t.Setenv("ADMIN_EMAIL", "admin@sainikcollege.in")

	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 2*time.Hour, cfg.TokenTTL)
	require.Equal(t, ":9000", cfg.Addr())
	require.Equal(t, 4, cfg.WorkerCount)
	require.Equal(t, 0.5, cfg.LoginRate)
	require.Equal(t, 3, cfg.LoginBurst)
	require.Equal(t, 5*time.Minute, cfg.NewsCacheTTL)
	require.True(t, cfg.HasAdminBootstrap())
	require.True(t, cfg.Debug)
}

func TestLoadYAMLOverlay(t *testing.T) {
	restore()
	t.Cleanup(restore)
	setRequired(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"7000\"\nstatic_dir: site\nworker_count: 3\njwt_secret: from-yaml-but-env-wins\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Addr())
	require.Equal(t, "site", cfg.StaticDir)
	require.Equal(t, 3, cfg.WorkerCount)
	require.Equal(t, "0123456789abcdef", cfg.JWTSecret)
}

func TestLoadErrors(t *testing.T) {
	restore()
	t.Cleanup(restore)

	t.Run("missing database", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("missing redis", func(t *testing.T) {
		setRequired(t)
		t.Setenv("REDIS_ADDR", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("short secret", func(t *testing.T) {
		setRequired(t)
		t.Setenv("JWT_SECRET", "short")
		_, err := Load()
		require.Error(t, err)
	})

	for _, key := range []string{"REDIS_DB", "WORKER_COUNT", "LOGIN_RATE", "LOGIN_BURST", "TOKEN_TTL", "NEWS_CACHE_TTL", "DEBUG"} {
		t.Run("bad "+key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "bad")
			_, err := Load()
			require.Error(t, err)
		})
	}

	t.Run("missing config file", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("bad yaml", func(t *testing.T) {
		setRequired(t)
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: [1, 2\n"), 0o644))
		t.Setenv("CONFIG_FILE", path)
		_, err := Load()
		require.Error(t, err)
	})
}

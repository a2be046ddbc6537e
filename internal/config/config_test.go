package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-oauth-tokens/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears variables for the duration of the test. envconfig also
// reads the unprefixed names, so those are cleared too.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"APP_NAME", "ENV", "LOG_LEVEL", "TOKEN_DIR", "REDIS_URL", "ACCOUNT"} {
		for _, key := range []string{name, config.Prefix + "_" + name} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func TestNew(t *testing.T) {
	unsetEnv(t)

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/home/test/.config")
		t.Setenv("HOME", "/home/test")

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, "OAuth Tokens", c.GetAppName())
		require.Equal(t, "DEV", c.GetEnv())
		require.Equal(t, zerolog.InfoLevel, c.GetLogLevel())
		require.Equal(t, "default", c.GetAccount())
		require.Empty(t, c.GetRedisURL())
		require.Equal(t, "oauthtoken", filepath.Base(c.GetTokenDir()))
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("OAUTHTOKEN_APP_NAME", "tokens")
		t.Setenv("OAUTHTOKEN_ENV", "PROD")
		t.Setenv("OAUTHTOKEN_LOG_LEVEL", "debug")
		t.Setenv("OAUTHTOKEN_TOKEN_DIR", "/var/lib/tokens")
		t.Setenv("OAUTHTOKEN_REDIS_URL", "redis://localhost:6379/0")
		t.Setenv("OAUTHTOKEN_ACCOUNT", "work")

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, "tokens", c.GetAppName())
		require.Equal(t, "PROD", c.GetEnv())
		require.Equal(t, zerolog.DebugLevel, c.GetLogLevel())
		require.Equal(t, "/var/lib/tokens", c.GetTokenDir())
		require.Equal(t, "redis://localhost:6379/0", c.GetRedisURL())
		require.Equal(t, "work", c.GetAccount())
	})

	t.Run("unknown log level", func(t *testing.T) {
		t.Setenv("OAUTHTOKEN_LOG_LEVEL", "chatty")

		c, err := config.New()
		require.NoError(t, err)
		require.Equal(t, zerolog.InfoLevel, c.GetLogLevel())
	})
}

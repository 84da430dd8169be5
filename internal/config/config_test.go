package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigValue(t *testing.T) {
	t.Run("flag takes precedence", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_KEY", "from-env")
		got := getConfigValue("from-flag", "TEST_CONFIG_KEY", "from-default")
		assert.Equal(t, "from-flag", got)
	})

	t.Run("env used when flag empty", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_KEY", "from-env")
		got := getConfigValue("", "TEST_CONFIG_KEY", "from-default")
		assert.Equal(t, "from-env", got)
	})

	t.Run("default used when flag and env empty", func(t *testing.T) {
		got := getConfigValue("", "TEST_CONFIG_KEY_UNSET", "from-default")
		assert.Equal(t, "from-default", got)
	})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nRESONATE_TEST_A=alpha\nRESONATE_TEST_B=\"quoted\"\n\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("RESONATE_TEST_A", "")
	t.Setenv("RESONATE_TEST_B", "")
	os.Unsetenv("RESONATE_TEST_A")
	os.Unsetenv("RESONATE_TEST_B")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "alpha", os.Getenv("RESONATE_TEST_A"))
	assert.Equal(t, "quoted", os.Getenv("RESONATE_TEST_B"))
}

func TestLoadEnvFileInvalidLine(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("not a pair\n"), 0o600))

	assert.Error(t, loadEnvFile(envPath))
}

func TestExpandPath(t *testing.T) {
	t.Run("empty uses default", func(t *testing.T) {
		got, err := expandPath("", "/srv/media")
		require.NoError(t, err)
		assert.Equal(t, "/srv/media", got)
	})

	t.Run("tilde expands to home", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		got, err := expandPath("~/media", "")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "media"), got)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:    AppConfig{Environment: "development"},
			Logger: LoggerConfig{Level: "info"},
			Media:  MediaConfig{BasePath: "/srv/media"},
			Server: ServerConfig{PublicURL: "http://localhost:8080"},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown environment rejected", func(t *testing.T) {
		cfg := valid()
		cfg.App.Environment = "qa"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown log level rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Logger.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})

	t.Run("public URL must be http or https", func(t *testing.T) {
		cfg := valid()
		cfg.Server.PublicURL = "localhost:8080"
		assert.Error(t, cfg.Validate())
	})
}

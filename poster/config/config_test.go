package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"yadro.com/comicbot/poster/core"
)

var managedVars = []string{
	"ENV_FILE", "LOG_LEVEL", "LOG_FILE", "TG_BOT_TOKEN", "TG_CHANNEL_ID",
	"XKCD_URL", "TG_API_URL", "HTTP_TIMEOUT", "BROKER_ADDRESS", "BROKER_SUBJECT",
}

// cleanEnv unsets every variable the config reads, also after the test,
// since .env files are applied to the process environment.
func cleanEnv(t *testing.T) {
	t.Helper()
	unset := func() {
		for _, k := range managedVars {
			_ = os.Unsetenv(k)
		}
	}
	unset()
	t.Cleanup(unset)
}

func setEnv(t *testing.T, kv ...string) {
	t.Helper()
	for i := 0; i+1 < len(kv); i += 2 {
		require.NoError(t, os.Setenv(kv[i], kv[i+1]))
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	cleanEnv(t)
	setEnv(t, "TG_BOT_TOKEN", "123456:ABC-def_ghi", "TG_CHANNEL_ID", "@xkcd_daily")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "INFO", cfg.LogLevel)
	require.Equal(t, "https://xkcd.com", cfg.XKCDURL)
	require.Equal(t, "https://api.telegram.org", cfg.TelegramURL)
	require.Equal(t, 10*time.Second, cfg.Timeout)
	require.Empty(t, cfg.BrokerAddress)
	require.Equal(t, "xkcd.comic.posted", cfg.BrokerSubject)
	require.Equal(t, core.Credentials{BotToken: "123456:ABC-def_ghi", ChannelID: "@xkcd_daily"}, cfg.Credentials())
}

func TestLoad_FromEnvFile(t *testing.T) {
	cleanEnv(t)
	path := writeEnvFile(t, `TG_BOT_TOKEN=42:secret
TG_CHANNEL_ID=-1001234567890
LOG_LEVEL=debug
HTTP_TIMEOUT=3s
BROKER_ADDRESS=nats://localhost:4222
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "42:secret", cfg.BotToken)
	require.Equal(t, "-1001234567890", cfg.ChannelID)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, 3*time.Second, cfg.Timeout)
	require.Equal(t, "nats://localhost:4222", cfg.BrokerAddress)
}

func TestLoad_EnvironmentWinsOverFile(t *testing.T) {
	cleanEnv(t)
	setEnv(t, "TG_CHANNEL_ID", "@from_shell")
	path := writeEnvFile(t, `TG_BOT_TOKEN=42:secret
TG_CHANNEL_ID=@from_file
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "@from_shell", cfg.ChannelID)
	require.Equal(t, "42:secret", cfg.BotToken)
}

func TestLoad_MissingSource(t *testing.T) {
	cleanEnv(t)
	setEnv(t, "TG_BOT_TOKEN", "1:a", "TG_CHANNEL_ID", "@comics")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.ErrorIs(t, err, core.ErrConfig)
	require.Contains(t, err.Error(), "configuration source not found")
}

func TestLoad_MissingKeys(t *testing.T) {
	cases := []struct {
		name string
		env  []string
		key  string
	}{
		{"no token", []string{"TG_CHANNEL_ID", "@comics"}, "TG_BOT_TOKEN"},
		{"blank token", []string{"TG_BOT_TOKEN", "  ", "TG_CHANNEL_ID", "@comics"}, "TG_BOT_TOKEN"},
		{"no channel", []string{"TG_BOT_TOKEN", "1:a"}, "TG_CHANNEL_ID"},
		{"nothing", nil, "TG_BOT_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cleanEnv(t)
			setEnv(t, tc.env...)
			_, err := Load("")
			require.ErrorIs(t, err, core.ErrConfig)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_MalformedValues(t *testing.T) {
	cases := []struct {
		name string
		env  []string
		key  string
	}{
		{"token without id", []string{"TG_BOT_TOKEN", "secret", "TG_CHANNEL_ID", "@comics"}, "TG_BOT_TOKEN"},
		{"channel name", []string{"TG_BOT_TOKEN", "1:a", "TG_CHANNEL_ID", "comics"}, "TG_CHANNEL_ID"},
		{"log level", []string{"TG_BOT_TOKEN", "1:a", "TG_CHANNEL_ID", "@comics", "LOG_LEVEL", "LOUD"}, "LOG_LEVEL"},
		{"timeout", []string{"TG_BOT_TOKEN", "1:a", "TG_CHANNEL_ID", "@comics", "HTTP_TIMEOUT", "0s"}, "HTTP_TIMEOUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cleanEnv(t)
			setEnv(t, tc.env...)
			_, err := Load("")
			require.ErrorIs(t, err, core.ErrConfig)
			require.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	cleanEnv(t)
	setEnv(t, "TG_BOT_TOKEN", "1:a", "TG_CHANNEL_ID", "@comics", "HTTP_TIMEOUT", "soon")

	_, err := Load("")
	require.ErrorIs(t, err, core.ErrConfig)
}

func TestSource(t *testing.T) {
	cleanEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	require.Empty(t, Source())

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultEnvFile), []byte("LOG_LEVEL=INFO\n"), 0o600))
	require.Equal(t, DefaultEnvFile, Source())

	setEnv(t, "ENV_FILE", "/etc/poster/poster.env")
	require.Equal(t, "/etc/poster/poster.env", Source())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_TOKEN", "123:test-token")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "123:test-token", cfg.Telegram.BotToken)
	require.Equal(t, "tiktokgassaverbot", cfg.Telegram.BotHandle)
	require.Equal(t, 8, cfg.Telegram.Workers)
	require.Equal(t, "https://www.tikwm.com/api/", cfg.Extractor.URL)
	require.Equal(t, 30*time.Second, cfg.Extractor.Timeout)
	require.Equal(t, 5*time.Minute, cfg.Media.TaskTimeout)
	require.Equal(t, "8080", cfg.Service.Port)
	require.Equal(t, "info", cfg.Logging.Level)
	require.Equal(t, float64(25), cfg.Telegram.RateLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("API_TOKEN", "123:test-token")
	t.Setenv("BOT_HANDLE", "otherbot")
	t.Setenv("MEDIA_DOWNLOAD_TIMEOUT", "15s")
	t.Setenv("SERVICE_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "otherbot", cfg.Telegram.BotHandle)
	require.Equal(t, 15*time.Second, cfg.Media.DownloadTimeout)
	require.Equal(t, "9090", cfg.Service.Port)
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("API_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "API_TOKEN")
}

func TestValidate_Workers(t *testing.T) {
	cfg := &Config{
		Telegram:  TelegramConfig{BotToken: "x", Workers: 0},
		Extractor: ExtractorConfig{URL: "http://example", Timeout: time.Second},
		Media:     MediaConfig{DownloadTimeout: time.Second, TaskTimeout: time.Second},
	}

	require.Error(t, cfg.Validate())

	cfg.Telegram.Workers = 1
	require.NoError(t, cfg.Validate())
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// Config holds all configuration for the relay bot
type Config struct {
	Telegram  TelegramConfig
	Extractor ExtractorConfig
	Media     MediaConfig
	Logging   LoggingConfig
	Service   ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken       string        `envconfig:"API_TOKEN"`
	BotHandle      string        `envconfig:"BOT_HANDLE" default:"tiktokgassaverbot"`
	Workers        int           `envconfig:"TELEGRAM_WORKERS" default:"8"`
	RequestTimeout time.Duration `envconfig:"TELEGRAM_REQUEST_TIMEOUT" default:"2m"`
	RateLimit      float64       `envconfig:"TELEGRAM_RATE_LIMIT" default:"25"`
}

// ExtractorConfig holds extraction API client configuration
type ExtractorConfig struct {
	URL       string        `envconfig:"EXTRACTOR_URL" default:"https://www.tikwm.com/api/"`
	Timeout   time.Duration `envconfig:"EXTRACTOR_TIMEOUT" default:"30s"`
	UserAgent string        `envconfig:"EXTRACTOR_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"`
}

// MediaConfig holds download and temporary storage configuration
type MediaConfig struct {
	DownloadTimeout time.Duration `envconfig:"MEDIA_DOWNLOAD_TIMEOUT" default:"2m"`
	TaskTimeout     time.Duration `envconfig:"TASK_TIMEOUT" default:"5m"`
	TempDir         string        `envconfig:"MEDIA_TEMP_DIR"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"console"`
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string `envconfig:"SERVICE_NAME" default:"tiktok-relay"`
	Port string `envconfig:"SERVICE_PORT" default:"8080"`
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config    *Config
	Telegram  *TelegramConfig
	Extractor *ExtractorConfig
	Media     *MediaConfig
	Logging   *LoggingConfig
	Service   *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:    cfg,
		Telegram:  &cfg.Telegram,
		Extractor: &cfg.Extractor,
		Media:     &cfg.Media,
		Logging:   &cfg.Logging,
		Service:   &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("API_TOKEN is required")
	}

	if c.Telegram.Workers <= 0 {
		return fmt.Errorf("TELEGRAM_WORKERS must be positive, got %d", c.Telegram.Workers)
	}

	if c.Extractor.URL == "" {
		return fmt.Errorf("EXTRACTOR_URL is required")
	}

	if c.Extractor.Timeout <= 0 || c.Media.DownloadTimeout <= 0 || c.Media.TaskTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}

	return nil
}

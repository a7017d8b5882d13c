package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	FrontendOrigins []string
	SiteURL         string

	AnthropicAPIKey  string
	AnthropicBaseURL string
	StoryModel       string
	StoryMaxTokens   int64
	StoryRateLimit   float64

	CatalogFile        string
	WalletStartBalance int64
	MinContribution    int64
	NotificationTTL    time.Duration

	DeadlineCron string
	PurgeCron    string

	TelegramToken    string
	TelegramChat     string
	TelegramThreadID *int

	LogLevel  string
	LogFormat string
}

// Load reads .env when present, then the process environment. A missing API
// key is not an error: the proxy starts and upstream calls fail later.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:         envOrDefault("PORT", "3001"),
		FrontendOrigins:  splitList(envOrDefault("FRONTEND_ORIGINS", "*")),
		SiteURL:          os.Getenv("SITE_URL"),
		AnthropicAPIKey:  os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicBaseURL: os.Getenv("ANTHROPIC_BASE_URL"),
		StoryModel:       envOrDefault("STORY_MODEL", "claude-haiku-4-5-20251001"),
		CatalogFile:      os.Getenv("CATALOG_FILE"),
		DeadlineCron:     envOrDefault("DEADLINE_CRON", "0 0 * * *"),
		PurgeCron:        envOrDefault("NOTIFICATION_PURGE_CRON", "*/5 * * * *"),
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChat:     os.Getenv("TELEGRAM_CHAT_ID"),
		LogLevel:         envOrDefault("LOG_LEVEL", "info"),
		LogFormat:        envOrDefault("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.StoryMaxTokens, err = envOrInt64("STORY_MAX_TOKENS", 1024); err != nil {
		return cfg, err
	}
	if cfg.StoryRateLimit, err = envOrFloat("STORY_RATE_LIMIT", 0); err != nil {
		return cfg, err
	}
	if cfg.WalletStartBalance, err = envOrInt64("WALLET_START_BALANCE", 500); err != nil {
		return cfg, err
	}
	if cfg.MinContribution, err = envOrInt64("MIN_CONTRIBUTION", 5); err != nil {
		return cfg, err
	}
	if cfg.NotificationTTL, err = envOrDuration("NOTIFICATION_TTL", 5*time.Second); err != nil {
		return cfg, err
	}
	if cfg.TelegramThreadID, err = envOrIntPtr("TELEGRAM_CHAT_THREAD_ID"); err != nil {
		return cfg, err
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := strconv.Atoi(c.HTTPPort); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	if c.StoryMaxTokens <= 0 {
		return fmt.Errorf("STORY_MAX_TOKENS must be positive")
	}
	if c.MinContribution <= 0 {
		return fmt.Errorf("MIN_CONTRIBUTION must be positive")
	}
	if c.WalletStartBalance < 0 {
		return fmt.Errorf("WALLET_START_BALANCE must not be negative")
	}
	if (c.TelegramToken == "") != (c.TelegramChat == "") {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together")
	}
	return nil
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChat != ""
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func envOrInt64(key string, fallback int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func envOrFloat(key string, fallback float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func envOrDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func envOrIntPtr(key string) (*int, error) {
	val := os.Getenv(key)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &parsed, nil
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

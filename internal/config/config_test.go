package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.HTTPPort)
	assert.Equal(t, []string{"*"}, cfg.FrontendOrigins)
	assert.Empty(t, cfg.AnthropicAPIKey)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.StoryModel)
	assert.Equal(t, int64(1024), cfg.StoryMaxTokens)
	assert.Zero(t, cfg.StoryRateLimit)
	assert.Equal(t, int64(500), cfg.WalletStartBalance)
	assert.Equal(t, int64(5), cfg.MinContribution)
	assert.Equal(t, 5*time.Second, cfg.NotificationTTL)
	assert.Equal(t, "0 0 * * *", cfg.DeadlineCron)
	assert.Equal(t, "*/5 * * * *", cfg.PurgeCron)
	assert.Nil(t, cfg.TelegramThreadID)
	assert.False(t, cfg.TelegramEnabled())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "8088")
	t.Setenv("FRONTEND_ORIGINS", "http://localhost:5173, https://civica.example ,")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("STORY_RATE_LIMIT", "2.5")
	t.Setenv("NOTIFICATION_TTL", "30s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "-100")
	t.Setenv("TELEGRAM_CHAT_THREAD_ID", "42")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8088", cfg.HTTPPort)
	assert.Equal(t, []string{"http://localhost:5173", "https://civica.example"}, cfg.FrontendOrigins)
	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
	assert.InDelta(t, 2.5, cfg.StoryRateLimit, 0.0001)
	assert.Equal(t, 30*time.Second, cfg.NotificationTTL)
	require.NotNil(t, cfg.TelegramThreadID)
	assert.Equal(t, 42, *cfg.TelegramThreadID)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoadDotEnv(t *testing.T) {
	chdirTemp(t)
	// godotenv never overrides a variable that is already set, even when empty.
	t.Setenv("STORY_MODEL", "")
	require.NoError(t, os.Unsetenv("STORY_MODEL"))
	require.NoError(t, os.WriteFile(".env", []byte("STORY_MODEL=claude-sonnet-4-5-20250929\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.StoryModel)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "http"},
		{"STORY_MAX_TOKENS", "many"},
		{"STORY_MAX_TOKENS", "0"},
		{"STORY_RATE_LIMIT", "fast"},
		{"WALLET_START_BALANCE", "-1"},
		{"MIN_CONTRIBUTION", "0"},
		{"NOTIFICATION_TTL", "5"},
		{"TELEGRAM_CHAT_THREAD_ID", "main"},
		{"TELEGRAM_BOT_TOKEN", "tok"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestInitLogger(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	require.NoError(t, InitLogger("debug", "console"))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger("warn", "json"))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger("loud", "json"))
}

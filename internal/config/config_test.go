package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 8000, cfg.AppPort)
		assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
		assert.Equal(t, "admin", cfg.AdminUsername)
		assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "auto", cfg.SearchProvider)
		assert.Empty(t, cfg.OpenAIAPIKey)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("DATABASE_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "postgres://u:p@db/chat?sslmode=disable")
		t.Setenv("TELEGRAM_CHAT_ID", "-100123")
		t.Setenv("SESSION_TTL", "2h")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
		assert.Equal(t, "postgres://u:p@db/chat?sslmode=disable", cfg.DatabaseURL)
		assert.Equal(t, int64(-100123), cfg.TelegramChatID)
		assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
		assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	})
}

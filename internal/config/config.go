package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort  int    `mapstructure:"APP_PORT"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`

	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL string `mapstructure:"OPENAI_BASE_URL"`
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	GeminiBaseURL string `mapstructure:"GEMINI_BASE_URL"`

	SearchProvider string `mapstructure:"SEARCH_PROVIDER"`
	TavilyAPIKey   string `mapstructure:"TAVILY_API_KEY"`

	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `mapstructure:"TELEGRAM_CHAT_ID"`

	AdminUsername string        `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string        `mapstructure:"ADMIN_PASSWORD"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure  bool          `mapstructure:"COOKIE_SECURE"`

	ImageRatePerMinute int    `mapstructure:"IMAGE_RATE_PER_MINUTE"`
	FrontendDir        string `mapstructure:"FRONTEND_DIR"`
}

// Database drivers understood by database.InitDB.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

func LoadConfig() (*Config, error) {
	viper.SetDefault("APP_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("DATABASE_DRIVER", DriverSQLite)
	viper.SetDefault("DATABASE_URL", "/data/polychat.db")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_BASE_URL", "")
	viper.SetDefault("SEARCH_PROVIDER", "auto")
	viper.SetDefault("TAVILY_API_KEY", "")
	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("TELEGRAM_CHAT_ID", 0)
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_TTL", "168h")
	viper.SetDefault("COOKIE_SECURE", false)
	viper.SetDefault("IMAGE_RATE_PER_MINUTE", 10)
	viper.SetDefault("FRONTEND_DIR", "./frontend/dist")

	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./backend")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

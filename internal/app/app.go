package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"polychat/backend/internal/api"
	"polychat/backend/internal/auth"
	"polychat/backend/internal/config"
	"polychat/backend/internal/database"
	"polychat/backend/internal/llm"
	"polychat/backend/internal/metrics"
	"polychat/backend/internal/notify"
	"polychat/backend/internal/repository"
	"polychat/backend/internal/search"
	"polychat/backend/internal/service"
)

const shutdownTimeout = 15 * time.Second

// App holds the wired application.
type App struct {
	Config *config.Config
	DB     *sql.DB
	Server *http.Server

	telegram *notify.Telegram
}

// Run loads the configuration, serves until SIGINT or SIGTERM and returns
// the process exit code.
func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)

	logConfigSource()

	app, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Serve(ctx); err != nil {
		slog.Error("Server failed", "error", err)
		return 1
	}
	return 0
}

// Migrate applies (up) or rolls back (down) the schema and returns the
// process exit code.
func Migrate(up bool) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	setupLogger(cfg.LogLevel)

	db, dialect, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to open database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(db, dialect, up); err != nil {
		slog.Error("Migration failed", "up", up, "error", err)
		return 1
	}
	slog.Info("Migrations applied", "up", up)
	return 0
}

// NewApp connects to the database and wires every component. Vendors without
// an API key stay unregistered.
func NewApp(cfg *config.Config) (*App, error) {
	db, dialect, err := database.InitDB(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to database.", "driver", cfg.DatabaseDriver)

	app := &App{Config: cfg, DB: db}
	router, err := app.wire(dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}
	return app, nil
}

func (a *App) wire(dialect database.Dialect) (http.Handler, error) {
	cfg := a.Config
	repo := repository.NewSQLRepository(a.DB, dialect)

	providers := llm.NewRegistry()
	var images llm.ImageGenerator
	if cfg.OpenAIAPIKey != "" {
		providers.Register(llm.VendorOpenAI, llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, nil))
		slog.Info("Chat vendor enabled", "vendor", llm.VendorOpenAI)
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiBaseURL, nil)
		if err != nil {
			return nil, err
		}
		providers.Register(llm.VendorGemini, gemini)
		images = gemini
		slog.Info("Chat vendor enabled", "vendor", llm.VendorGemini)
	}

	searcher, err := search.New(cfg.SearchProvider, cfg.TavilyAPIKey)
	if err != nil {
		return nil, err
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		telegram, err := notify.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, "")
		if err != nil {
			slog.Warn("Telegram notifications disabled", "error", err)
		} else {
			a.telegram = telegram
			notifier = telegram
		}
	}

	sessions, err := auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure, cfg.AdminUsername)
	if err != nil {
		return nil, err
	}
	recorder := metrics.NewRecorder()

	authService := service.NewAuthService(repo, notifier, cfg.AdminUsername)
	if err := authService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("failed to create admin account: %w", err)
	}
	conversationService := service.NewConversationService(repo)
	chatService := service.NewChatService(repo, providers, searcher, recorder)
	imageService := service.NewImageService(images, service.NewKeyedLimiter(cfg.ImageRatePerMinute), recorder)
	presetService := service.NewPresetService(repo, notifier)

	handlers := api.Handlers{
		Auth:          api.NewAuthHandler(authService, sessions),
		Conversations: api.NewConversationHandler(conversationService),
		Chat:          api.NewChatHandler(chatService),
		Images:        api.NewImageHandler(imageService),
		Presets:       api.NewPresetHandler(presetService),
	}
	return api.NewRouter(handlers, api.RouterOptions{
		Sessions:    sessions,
		Metrics:     recorder.Handler(),
		FrontendDir: cfg.FrontendDir,
	}), nil
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (a *App) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting server", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close waits for queued notifications and closes the database.
func (a *App) Close() {
	if a.telegram != nil {
		a.telegram.Wait()
	}
	if err := a.DB.Close(); err != nil {
		slog.Error("Failed to close database connection", "error", err)
	}
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

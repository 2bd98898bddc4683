package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	// Registers the generated API definitions with swag.
	_ "polychat/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"polychat/backend/internal/auth"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth          *AuthHandler
	Conversations *ConversationHandler
	Chat          *ChatHandler
	Images        *ImageHandler
	Presets       *PresetHandler
}

// RouterOptions carries the router's non-handler dependencies.
type RouterOptions struct {
	Sessions *auth.SessionManager
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	// FrontendDir holds the built single-page app. Empty disables static serving.
	FrontendDir string
}

// NewRouter creates the chi router with every route of the application.
func NewRouter(h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(LoadSession(opts.Sessions))

		// JSON routes get a request timeout. Streaming routes below must not.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/register", h.Auth.HandleRegister)
			r.Post("/login", h.Auth.HandleLogin)
			r.Post("/logout", h.Auth.HandleLogout)

			// Anonymous callers see the public catalog only.
			r.Get("/presets", h.Presets.HandleListPresets)

			r.Group(func(r chi.Router) {
				r.Use(RequireSession)

				r.Get("/user", h.Auth.HandleGetUser)

				r.Get("/conversations", h.Conversations.HandleListConversations)
				r.Post("/conversations", h.Conversations.HandleCreateConversation)
				r.Get("/conversations/{id}", h.Conversations.HandleGetConversation)
				r.Patch("/conversations/{id}", h.Conversations.HandleUpdateConversation)
				r.Delete("/conversations/{id}", h.Conversations.HandleDeleteConversation)
				r.Get("/conversations/{id}/messages", h.Conversations.HandleGetMessages)

				r.Get("/presets/pending", h.Presets.HandleListPending)
				r.Post("/presets", h.Presets.HandleCreatePreset)
				r.Post("/presets/user", h.Presets.HandleSubmitPreset)
				r.Put("/presets/{id}", h.Presets.HandleUpdatePreset)
				r.Delete("/presets/{id}", h.Presets.HandleDeletePreset)
				r.Patch("/presets/{id}/status", h.Presets.HandleSetPresetStatus)
			})

			r.Get("/presets/{id}", h.Presets.HandleGetPreset)
		})

		// Image generation can exceed the JSON timeout; chat streams hold the
		// connection open until the vendor finishes.
		r.Group(func(r chi.Router) {
			r.Use(RequireSession)

			r.Post("/chat", h.Chat.HandleChat)
			r.Post("/conversations/{id}/messages", h.Chat.HandleConversationMessage)
			r.Post("/generate-image", h.Images.HandleGenerateImage)
		})
	})

	if opts.FrontendDir != "" {
		r.Handle("/*", spaHandler(opts.FrontendDir))
	}
	return r
}

// spaHandler serves files from dir and falls back to index.html so that
// client-side routes survive a reload.
func spaHandler(dir string) http.Handler {
	fileServer := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				http.ServeFile(w, r, filepath.Join(dir, "index.html"))
				return
			}
		}
		fileServer.ServeHTTP(w, r)
	})
}

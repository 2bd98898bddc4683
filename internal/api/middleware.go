package api

import (
	"net/http"

	"polychat/backend/internal/auth"
	app_errors "polychat/backend/internal/errors"
)

// LoadSession attaches the caller's identity to the request context when a
// valid session cookie is present. Anonymous requests pass through.
func LoadSession(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, err := sessions.Identify(r); err == nil {
				r = r.WithContext(auth.WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession rejects requests without an identity with 401. It must run
// after LoadSession.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.FromContext(r.Context()); !ok {
			respondWithError(w, app_errors.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// identity returns the caller, or nil for anonymous requests.
func identity(r *http.Request) *auth.Identity {
	id, _ := auth.FromContext(r.Context())
	return id
}

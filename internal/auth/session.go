package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"polychat/backend/internal/model"
)

// CookieName is the name of the session cookie.
const CookieName = "polychat_session"

var ErrNoSession = errors.New("no valid session")

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID   string
	Username string
	IsAdmin  bool
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens stored in an
// HttpOnly cookie.
type SessionManager struct {
	secret        []byte
	ttl           time.Duration
	secure        bool
	adminUsername string
	now           func() time.Time
}

// NewSessionManager creates a manager. An empty secret is replaced by a random
// one, which invalidates sessions on every restart.
func NewSessionManager(secret string, ttl time.Duration, secure bool, adminUsername string) (*SessionManager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("could not generate session secret: %w", err)
		}
		slog.Warn("SESSION_SECRET is not set, sessions will not survive a restart")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SessionManager{
		secret:        key,
		ttl:           ttl,
		secure:        secure,
		adminUsername: adminUsername,
		now:           time.Now,
	}, nil
}

// IsAdmin reports whether username is the configured administrator.
func (m *SessionManager) IsAdmin(username string) bool {
	return m.adminUsername != "" && username == m.adminUsername
}

// Issue signs a token for user and sets it as the session cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, user *model.User) error {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("could not sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Identify returns the caller of r or ErrNoSession.
func (m *SessionManager) Identify(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	var c claims
	token, err := jwt.ParseWithClaims(cookie.Value, &c, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || c.Subject == "" {
		return nil, ErrNoSession
	}
	return &Identity{UserID: c.Subject, Username: c.Username, IsAdmin: m.IsAdmin(c.Username)}, nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the identity stored by the session middleware.
func FromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/model"
)

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "battery staple"))
}

// requestWith copies the cookies a recorder received onto a new request.
func requestWith(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionManager(t *testing.T) {
	m, err := NewSessionManager("secret", time.Hour, true, "admin")
	require.NoError(t, err)

	t.Run("Issue and identify", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, m.Issue(rec, &model.User{ID: "u1", Username: "alice"}))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)

		id, err := m.Identify(requestWith(rec))
		require.NoError(t, err)
		assert.Equal(t, &Identity{UserID: "u1", Username: "alice"}, id)
	})

	t.Run("Admin is recognized by username", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, m.Issue(rec, &model.User{ID: "u0", Username: "admin"}))

		id, err := m.Identify(requestWith(rec))
		require.NoError(t, err)
		assert.True(t, id.IsAdmin)
	})

	t.Run("No cookie", func(t *testing.T) {
		_, err := m.Identify(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Foreign signature", func(t *testing.T) {
		other, err := NewSessionManager("other-secret", time.Hour, false, "admin")
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		require.NoError(t, other.Issue(rec, &model.User{ID: "u1", Username: "admin"}))

		_, err = m.Identify(requestWith(rec))
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Expired token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, m.Issue(rec, &model.User{ID: "u1", Username: "alice"}))

		later := *m
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.Identify(requestWith(rec))
		assert.ErrorIs(t, err, ErrNoSession)
	})

	t.Run("Clear expires cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		m.Clear(rec)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})
}

func TestNewSessionManager_RandomSecret(t *testing.T) {
	m, err := NewSessionManager("", 0, false, "")
	require.NoError(t, err)
	assert.Len(t, m.secret, 32)
	assert.Equal(t, 7*24*time.Hour, m.ttl)
	assert.False(t, m.IsAdmin(""))
}

func TestIdentityContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), &Identity{UserID: "u1"})
	id, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", id.UserID)
}

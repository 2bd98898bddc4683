package notify_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/notify"
)

// fakeTelegram answers getMe and records every sendMessage form.
type fakeTelegram struct {
	mu   sync.Mutex
	sent []map[string]string
}

func (f *fakeTelegram) handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/getMe"):
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"polychat","username":"polychat_bot"}}`))
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		_ = r.ParseForm()
		f.mu.Lock()
		f.sent = append(f.sent, map[string]string{
			"path":       r.URL.Path,
			"chat_id":    r.Form.Get("chat_id"),
			"text":       r.Form.Get("text"),
			"parse_mode": r.Form.Get("parse_mode"),
		})
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestTelegram(t *testing.T) {
	fake := &fakeTelegram{}
	server := httptest.NewServer(http.HandlerFunc(fake.handler))
	defer server.Close()

	tg, err := notify.NewTelegram("123:abc", 42, server.URL+"/bot%s/%s")
	require.NoError(t, err)

	tg.NotifyNewUser(context.Background(), "<alice>")
	tg.NotifyPresetSubmitted(context.Background(), "Poet", "bob")
	tg.Wait()

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.Len(t, fake.sent, 2)

	var texts []string
	for _, m := range fake.sent {
		assert.Equal(t, "/bot123:abc/sendMessage", m["path"])
		assert.Equal(t, "42", m["chat_id"])
		assert.Equal(t, "HTML", m["parse_mode"])
		texts = append(texts, m["text"])
	}
	joined := strings.Join(texts, "\n")
	assert.Contains(t, joined, "<code>&lt;alice&gt;</code>")
	assert.Contains(t, joined, "Name: <code>Poet</code>")
}

func TestNewTelegram_BadToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":401,"description":"Unauthorized"}`))
	}))
	defer server.Close()

	_, err := notify.NewTelegram("bad", 42, server.URL+"/bot%s/%s")
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var n notify.Notifier = notify.Noop{}
	n.NotifyNewUser(context.Background(), "alice")
	n.NotifyPresetSubmitted(context.Background(), "p", "alice")
}

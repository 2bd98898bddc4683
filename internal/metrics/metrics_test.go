package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	done := r.StartChat("gpt-5")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.chatActive))
	done(OutcomeSuccess)
	assert.Equal(t, 0.0, testutil.ToFloat64(r.chatActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.chatRequests.WithLabelValues("gpt-5", OutcomeSuccess)))

	r.RecordToolCall("web_search", false)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.toolCalls.WithLabelValues("web_search", OutcomeError)))

	r.RecordImage(true)
	r.RecordImage(true)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.images.WithLabelValues(OutcomeSuccess)))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `polychat_chat_requests_total{model="gpt-5",outcome="success"} 1`)
}

func TestNilRecorder(t *testing.T) {
	var r *Recorder
	r.StartChat("gemini")(OutcomeError)
	r.RecordToolCall("web_search", true)
	r.RecordImage(false)
}

package search_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polychat/backend/internal/search"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name     string
		provider string
		key      string
		wantType any
		wantNil  bool
		wantErr  bool
	}{
		{name: "Auto with key", provider: "auto", key: "k", wantType: &search.Tavily{}},
		{name: "Auto without key", provider: "", wantType: &search.DuckDuckGo{}},
		{name: "Forced duckduckgo", provider: "DuckDuckGo", key: "k", wantType: &search.DuckDuckGo{}},
		{name: "Tavily without key", provider: "tavily", wantNil: true},
		{name: "Disabled", provider: "none", key: "k", wantNil: true},
		{name: "Unknown", provider: "bing", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := search.New(tc.provider, tc.key)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.wantNil {
				assert.Nil(t, s)
				return
			}
			assert.IsType(t, tc.wantType, s)
		})
	}
}

func TestTavily_Search(t *testing.T) {
	var captured map[string]any
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"answer": "Go 1.24 is the latest release.",
			"results": [
				{"title": "Go", "url": "https://go.dev", "content": "The Go programming language", "score": 0.9},
				{"title": "Release notes", "url": "https://go.dev/doc", "content": "Go 1.24", "score": 0.8}
			]
		}`))
	}))
	defer server.Close()

	tavily := search.NewTavily("secret", server.URL, server.Client())
	resp, err := tavily.Search(context.Background(), "latest go")

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "latest go", captured["query"])
	assert.Equal(t, "advanced", captured["search_depth"])
	assert.EqualValues(t, 5, captured["max_results"])
	assert.Equal(t, true, captured["include_answer"])

	assert.Equal(t, "Go 1.24 is the latest release.", resp.Answer)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, search.Result{Title: "Go", URL: "https://go.dev", Content: "The Go programming language"}, resp.Results[0])
}

func TestTavily_SearchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid key"}`))
	}))
	defer server.Close()

	_, err := search.NewTavily("bad", server.URL, server.Client()).Search(context.Background(), "q")
	assert.ErrorContains(t, err, "401")
}

const duckDuckGoPage = `<html><body>
<div class="result results_links"><div class="result__body">
  <h2><a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F&rut=abc">The Go Programming Language</a></h2>
  <a class="result__snippet">Go is an open source programming language.</a>
</div></div>
<div class="result results_links"><div class="result__body">
  <h2><a class="result__a" href="https://pkg.go.dev/">Go Packages</a></h2>
  <a class="result__snippet">Discover packages.</a>
</div></div>
<div class="result results_links"><div class="result__body"><h2><a class="result__a"></a></h2></div></div>
</body></html>`

func TestDuckDuckGo_Search(t *testing.T) {
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(duckDuckGoPage))
	}))
	defer server.Close()

	ddg := search.NewDuckDuckGo(server.URL+"/html/", server.Client())
	resp, err := ddg.Search(context.Background(), "golang docs")

	require.NoError(t, err)
	assert.Equal(t, "golang docs", query)
	assert.Empty(t, resp.Answer)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "The Go Programming Language", resp.Results[0].Title)
	assert.Equal(t, "https://go.dev/", resp.Results[0].URL)
	assert.Equal(t, "Go is an open source programming language.", resp.Results[0].Content)
	assert.Equal(t, "https://pkg.go.dev/", resp.Results[1].URL)
}

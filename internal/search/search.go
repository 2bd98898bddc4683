package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// MaxResults caps the number of results any backend returns.
const MaxResults = 5

// Provider names accepted by New.
const (
	ProviderAuto       = "auto"
	ProviderTavily     = "tavily"
	ProviderDuckDuckGo = "duckduckgo"
	ProviderNone       = "none"
)

type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Response is what the model receives as the web_search tool output.
type Response struct {
	Answer  string   `json:"answer,omitempty"`
	Results []Result `json:"results"`
}

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, query string) (*Response, error)
}

// New picks a backend. "auto" uses Tavily when a key is configured and falls
// back to DuckDuckGo otherwise. "none" returns a nil Searcher, which disables
// the web_search tool, as does "tavily" without a key.
func New(provider, tavilyKey string) (Searcher, error) {
	client := &http.Client{Timeout: 15 * time.Second}

	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderAuto:
		if tavilyKey != "" {
			slog.Info("Web search enabled", "provider", ProviderTavily)
			return NewTavily(tavilyKey, "", client), nil
		}
		slog.Info("Web search enabled", "provider", ProviderDuckDuckGo)
		return NewDuckDuckGo("", client), nil
	case ProviderTavily:
		if tavilyKey == "" {
			slog.Warn("Web search disabled: TAVILY_API_KEY is not set", "provider", ProviderTavily)
			return nil, nil
		}
		return NewTavily(tavilyKey, "", client), nil
	case ProviderDuckDuckGo:
		return NewDuckDuckGo("", client), nil
	case ProviderNone:
		slog.Info("Web search disabled")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown search provider %q", provider)
	}
}

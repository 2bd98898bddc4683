package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const tavilyDefaultURL = "https://api.tavily.com"

// Tavily queries the Tavily search API with advanced depth and an
// LLM-generated answer.
type Tavily struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

func NewTavily(apiKey, baseURL string, client *http.Client) *Tavily {
	if baseURL == "" {
		baseURL = tavilyDefaultURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Tavily{client: client, apiKey: apiKey, baseURL: baseURL}
}

type tavilyRequest struct {
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	MaxResults    int    `json:"max_results"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

func (t *Tavily) Search(ctx context.Context, query string) (*Response, error) {
	body, err := json.Marshal(tavilyRequest{
		Query:         query,
		SearchDepth:   "advanced",
		MaxResults:    MaxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tavily returned non-200 status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("could not decode tavily response: %w", err)
	}

	out := &Response{Answer: tr.Answer, Results: make([]Result, 0, len(tr.Results))}
	for _, r := range tr.Results {
		if len(out.Results) == MaxResults {
			break
		}
		out.Results = append(out.Results, Result{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return out, nil
}

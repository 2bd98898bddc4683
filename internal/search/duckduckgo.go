package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const duckDuckGoDefaultURL = "https://html.duckduckgo.com/html/"

// DuckDuckGo scrapes the DuckDuckGo HTML results page. It needs no API key
// and produces no synthesized answer.
type DuckDuckGo struct {
	client  *http.Client
	baseURL string
}

func NewDuckDuckGo(baseURL string, client *http.Client) *DuckDuckGo {
	if baseURL == "" {
		baseURL = duckDuckGoDefaultURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &DuckDuckGo{client: client, baseURL: baseURL}
}

func (d *DuckDuckGo) Search(ctx context.Context, query string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible)")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo returned non-200 status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not parse duckduckgo response: %w", err)
	}

	out := &Response{Results: []Result{}}
	// The page layout changes from time to time; keep selectors conservative.
	doc.Find(".result__body").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		link := s.Find(".result__a").First()
		title := strings.TrimSpace(link.Text())
		snippet := strings.TrimSpace(s.Find(".result__snippet").Text())
		if title == "" && snippet == "" {
			return true
		}
		href, _ := link.Attr("href")
		out.Results = append(out.Results, Result{Title: title, URL: resolveRedirect(href), Content: snippet})
		return len(out.Results) < MaxResults
	})
	return out, nil
}

// resolveRedirect unwraps DuckDuckGo's "/l/?uddg=<target>" redirect links.
func resolveRedirect(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

// Package ddg implements the web-search collaborator over the DuckDuckGo
// Instant Answer API. Per the Searcher contract, Search never returns an
// error: failures yield an empty result set plus a diagnostic entry.
package ddg

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/serenelab/wellspring/pkg/ports"
)

const defaultBaseURL = "https://api.duckduckgo.com"

// Config is the explicit configuration record for the search client.
type Config struct {
	BaseURL string // optional override, e.g. a test server
	Timeout time.Duration
}

// Client implements ports.Searcher.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithLogger configures a logger for diagnostic output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a search client from the given config.
func New(cfg Config, opts ...Option) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// instant answer API response, reduced to the fields we read.
type apiResponse struct {
	AbstractText   string `json:"AbstractText"`
	AbstractURL    string `json:"AbstractURL"`
	Heading        string `json:"Heading"`
	RelatedTopics  []apiTopic
}

type apiTopic struct {
	Text     string     `json:"Text"`
	FirstURL string     `json:"FirstURL"`
	Topics   []apiTopic `json:"Topics"` // nested topic groups
}

// Search queries DuckDuckGo and returns at most maxResults hits.
// On failure it returns a single diagnostic entry instead of raising, so a
// degraded search never breaks the calling workflow node.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []ports.SearchResult {
	results, err := c.search(ctx, query, maxResults)
	if err != nil {
		c.log.Warn("search degraded", "query", query, "err", err)
		return []ports.SearchResult{{
			Title:   "search unavailable",
			Snippet: err.Error(),
		}}
	}
	return results
}

func (c *Client) search(ctx context.Context, query string, maxResults int) ([]ports.SearchResult, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	endpoint := fmt.Sprintf("%s/?q=%s&format=json&no_html=1&no_redirect=1",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", res.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]ports.SearchResult, 0, maxResults)
	if body.AbstractText != "" {
		results = append(results, ports.SearchResult{
			Title:   body.Heading,
			URL:     body.AbstractURL,
			Snippet: body.AbstractText,
		})
	}
	collectTopics(body.RelatedTopics, &results, maxResults)
	return results, nil
}

// collectTopics flattens nested topic groups until the limit is reached.
func collectTopics(topics []apiTopic, out *[]ports.SearchResult, limit int) {
	for _, topic := range topics {
		if len(*out) >= limit {
			return
		}
		if len(topic.Topics) > 0 {
			collectTopics(topic.Topics, out, limit)
			continue
		}
		if topic.Text == "" {
			continue
		}
		*out = append(*out, ports.SearchResult{
			Title:   topic.Text,
			URL:     topic.FirstURL,
			Snippet: topic.Text,
		})
	}
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL = "https://itunes.apple.com"
	defaultCountry = "US"
	defaultLimit   = 20
	maxLimit       = 200
)

// Client queries the iTunes Search API for movies. No API key is required.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type searchResponse struct {
	ResultCount int         `json:"resultCount"`
	Results     []Candidate `json:"results"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default().With("component", "itunes-catalog"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns raw movie candidates for the given term. An empty term
// yields no results without a request. Malformed response bodies are treated
// as zero results; transport and HTTP-status failures are errors.
func (c *Client) Search(ctx context.Context, term string, limit int, country string) ([]Candidate, error) {
	if term == "" {
		return []Candidate{}, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if country == "" {
		country = defaultCountry
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("media", "movie")
	params.Set("entity", "movie")
	params.Set("attribute", "movieTerm")
	params.Set("country", country)
	params.Set("limit", fmt.Sprintf("%d", limit))

	fullURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "reelpick/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("iTunes API returned status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		c.logger.Warn("malformed catalog response, treating as zero results", "err", err)
		return []Candidate{}, nil
	}

	if searchResp.Results == nil {
		return []Candidate{}, nil
	}
	return searchResp.Results, nil
}

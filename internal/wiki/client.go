package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://en.wikipedia.org"

// Client fetches plot summaries from the Wikipedia REST API. No API key is
// required.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

type summaryResponse struct {
	Extract     string `json:"extract"`
	Description string `json:"description"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: slog.Default().With("component", "wiki"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summarize returns a short summary for the given title, or an empty string
// when Wikipedia has no matching page. Absence is not an error; only
// transport failures are.
func (c *Client) Summarize(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", nil
	}

	slug := strings.ReplaceAll(title, " ", "_")
	fullURL := fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, url.PathEscape(slug))

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "reelpick/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia API returned status %d", resp.StatusCode)
	}

	var summary summaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		c.logger.Warn("malformed summary response", "title", title, "err", err)
		return "", nil
	}

	if summary.Extract != "" {
		return summary.Extract, nil
	}
	return summary.Description, nil
}

package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reelpick/reelpick/internal/models"
)

// Summarizer fetches a short plot summary for a movie title.
type Summarizer interface {
	Summarize(ctx context.Context, title string) (string, error)
}

// Cache stores previously fetched overviews keyed by title.
type Cache interface {
	Get(ctx context.Context, title string) (string, bool, error)
	Put(ctx context.Context, title, overview string) error
}

// Enricher fills missing movie overviews from the summary provider, with an
// optional read-through cache in front of it.
type Enricher struct {
	summarizer Summarizer
	cache      Cache
	logger     *slog.Logger
}

// NewEnricher creates an Enricher. cache may be nil to disable caching.
func NewEnricher(summarizer Summarizer, cache Cache) *Enricher {
	return &Enricher{
		summarizer: summarizer,
		cache:      cache,
		logger:     slog.Default().With("component", "enrich"),
	}
}

// Enrich fills m.Overview when it is missing. The returned error reports the
// outcome of this one attempt; callers are expected to log it and carry on
// rather than abort the surrounding search.
func (e *Enricher) Enrich(ctx context.Context, m *models.Movie) error {
	if m.Overview != "" || m.Title == "" {
		return nil
	}

	if e.cache != nil {
		overview, ok, err := e.cache.Get(ctx, m.Title)
		if err != nil {
			e.logger.Warn("summary cache lookup failed", "title", m.Title, "err", err)
		} else if ok {
			m.Overview = overview
			return nil
		}
	}

	summary, err := e.summarizer.Summarize(ctx, m.Title)
	if err != nil {
		return fmt.Errorf("summarizing %q: %w", m.Title, err)
	}
	if summary == "" {
		return nil
	}

	m.Overview = summary
	if e.cache != nil {
		if err := e.cache.Put(ctx, m.Title, summary); err != nil {
			e.logger.Warn("summary cache store failed", "title", m.Title, "err", err)
		}
	}
	return nil
}

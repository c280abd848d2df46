package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reelpick/reelpick/internal/filter"
	"github.com/reelpick/reelpick/internal/models"
	"github.com/reelpick/reelpick/internal/rank"
)

// PageSize is how many results one page holds.
const PageSize = 5

const (
	searchLimit = 30
	enrichLimit = 10
)

// Session is the per-conversation state machine: the accumulated filters,
// the last search's full ranked result list, and a zero-based page cursor.
// A Session is not safe for concurrent turns; each conversation must own its
// own instance.
type Session struct {
	filters  filter.Filter
	results  []models.Movie
	page     int
	catalog  Catalog
	enricher Enricher
	country  string
	logger   *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithCountry sets the catalog country hint. Default is the catalog's own.
func WithCountry(country string) SessionOption {
	return func(s *Session) {
		s.country = country
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession creates an empty session. enricher may be nil to skip
// enrichment entirely.
func NewSession(cat Catalog, enricher Enricher, opts ...SessionOption) *Session {
	s := &Session{
		catalog:  cat,
		enricher: enricher,
		logger:   slog.Default().With("component", "session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filters returns the session's current filters.
func (s *Session) Filters() filter.Filter {
	return s.filters
}

// SetFilters replaces the session's filters wholesale.
func (s *Session) SetFilters(f filter.Filter) {
	s.filters = f
}

// Search builds the catalog query from the current filters, ranks the
// returned candidates, normalizes them into movies, enriches the top of the
// list best-effort, and stores the result as the new active set with the
// page cursor back at zero. Catalog failures propagate; enrichment failures
// never do.
func (s *Session) Search(ctx context.Context) ([]models.Movie, error) {
	term := rank.BuildQuery(s.filters)
	s.logger.Debug("searching catalog", "term", term)

	candidates, err := s.catalog.Search(ctx, term, searchLimit, s.country)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}

	ranked := rank.Rank(candidates, s.filters)
	movies := make([]models.Movie, len(ranked))
	for i, c := range ranked {
		movies[i] = movieFromCandidate(c)
	}

	if s.enricher != nil {
		for i := 0; i < len(movies) && i < enrichLimit; i++ {
			if err := s.enricher.Enrich(ctx, &movies[i]); err != nil {
				s.logger.Warn("enrichment failed", "title", movies[i].Title, "err", err)
			}
		}
	}

	s.results = movies
	s.page = 0
	return movies, nil
}

// CurrentPage returns the active page of results, which may be shorter than
// the page size at the tail, or empty.
func (s *Session) CurrentPage() []models.Movie {
	start := s.page * PageSize
	if start >= len(s.results) {
		return []models.Movie{}
	}
	end := start + PageSize
	if end > len(s.results) {
		end = len(s.results)
	}
	return s.results[start:end]
}

// HasMore reports whether another page of results exists.
func (s *Session) HasMore() bool {
	return (s.page+1)*PageSize < len(s.results)
}

// NextPage advances the cursor when more results exist and returns the
// current page either way.
func (s *Session) NextPage() []models.Movie {
	if s.HasMore() {
		s.page++
	}
	return s.CurrentPage()
}

// Reset clears filters, results, and the page cursor.
func (s *Session) Reset() {
	s.filters = filter.Filter{}
	s.results = nil
	s.page = 0
}

// Results returns the full ranked result list of the last search.
func (s *Session) Results() []models.Movie {
	return s.results
}

// Page returns the zero-based page index.
func (s *Session) Page() int {
	return s.page
}

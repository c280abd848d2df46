package agent

import (
	"context"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/filter"
	"github.com/reelpick/reelpick/internal/models"
)

// FilterParser turns free text into a filter update merged onto the prior
// filters. A failure aborts the whole turn; there is no local fallback.
type FilterParser interface {
	ParseFilters(ctx context.Context, userText string, prior filter.Filter) (filter.Filter, error)
}

// Catalog searches the external movie catalog.
type Catalog interface {
	Search(ctx context.Context, term string, limit int, country string) ([]catalog.Candidate, error)
}

// Enricher fills a missing movie overview, best-effort.
type Enricher interface {
	Enrich(ctx context.Context, m *models.Movie) error
}

// QuestionProvider generates short follow-up questions. An empty result or
// an error makes the caller fall back to a static prompt.
type QuestionProvider interface {
	ClarifyingQuestion(ctx context.Context, userText string, f filter.Filter) (string, error)
	NarrowingQuestion(ctx context.Context, userText string, f filter.Filter, total int) (string, error)
}

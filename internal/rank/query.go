package rank

import (
	"strconv"
	"strings"

	"github.com/reelpick/reelpick/internal/filter"
)

const defaultQuery = "popular movies"

// BuildQuery combines the filter's signals into a single search term for the
// catalog provider, which only accepts free text. Exclusions are enforced
// locally by Rank, not encoded in the query.
func BuildQuery(f filter.Filter) string {
	var terms []string
	if f.Query != "" {
		terms = append(terms, f.Query)
	}
	terms = append(terms, f.Genres...)
	terms = append(terms, f.Actors...)
	terms = append(terms, f.Directors...)

	if f.Year != 0 {
		terms = append(terms, strconv.Itoa(f.Year))
	} else if f.YearFrom != 0 {
		terms = append(terms, strconv.Itoa(f.YearFrom))
	} else if f.YearTo != 0 {
		terms = append(terms, strconv.Itoa(f.YearTo))
	}

	terms = append(terms, f.IncludeTerms...)

	query := strings.TrimSpace(strings.Join(terms, " "))
	if query != "" {
		return query
	}
	if f.Query != "" {
		return f.Query
	}
	return defaultQuery
}

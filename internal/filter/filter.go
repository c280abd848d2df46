package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter is the accumulated search criteria for one session. The zero value
// means "no constraints".
type Filter struct {
	Query        string   `json:"query"`
	IncludeTerms []string `json:"include_terms"`
	ExcludeTerms []string `json:"exclude_terms"`
	Genres       []string `json:"genres"`
	Actors       []string `json:"actors"`
	Directors    []string `json:"directors"`
	Year         int      `json:"year,omitempty"`
	YearFrom     int      `json:"year_from,omitempty"`
	YearTo       int      `json:"year_to,omitempty"`
	Country      string   `json:"country,omitempty"`
}

// Merge fills every empty field of update with the corresponding value from
// prior. Non-empty fields from update win whole; list fields are never
// unioned element-wise.
func Merge(update, prior Filter) Filter {
	merged := update
	if merged.Query == "" {
		merged.Query = prior.Query
	}
	if len(merged.IncludeTerms) == 0 {
		merged.IncludeTerms = append([]string(nil), prior.IncludeTerms...)
	}
	if len(merged.ExcludeTerms) == 0 {
		merged.ExcludeTerms = append([]string(nil), prior.ExcludeTerms...)
	}
	if len(merged.Genres) == 0 {
		merged.Genres = append([]string(nil), prior.Genres...)
	}
	if len(merged.Actors) == 0 {
		merged.Actors = append([]string(nil), prior.Actors...)
	}
	if len(merged.Directors) == 0 {
		merged.Directors = append([]string(nil), prior.Directors...)
	}
	if merged.Year == 0 {
		merged.Year = prior.Year
	}
	if merged.YearFrom == 0 {
		merged.YearFrom = prior.YearFrom
	}
	if merged.YearTo == 0 {
		merged.YearTo = prior.YearTo
	}
	if merged.Country == "" {
		merged.Country = prior.Country
	}
	return merged
}

// Describe returns a compact human-readable summary of the active criteria.
func (f Filter) Describe() string {
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("query='%s'", f.Query))
	}
	if len(f.Genres) > 0 {
		parts = append(parts, "genres="+strings.Join(f.Genres, ", "))
	}
	if len(f.Actors) > 0 {
		parts = append(parts, "actors="+strings.Join(f.Actors, ", "))
	}
	if len(f.Directors) > 0 {
		parts = append(parts, "directors="+strings.Join(f.Directors, ", "))
	}
	if f.Year != 0 {
		parts = append(parts, fmt.Sprintf("year=%d", f.Year))
	}
	if f.YearFrom != 0 || f.YearTo != 0 {
		parts = append(parts, fmt.Sprintf("year_range=%s-%s", yearString(f.YearFrom), yearString(f.YearTo)))
	}
	if len(f.IncludeTerms) > 0 {
		parts = append(parts, "include="+strings.Join(f.IncludeTerms, ", "))
	}
	if len(f.ExcludeTerms) > 0 {
		parts = append(parts, "exclude="+strings.Join(f.ExcludeTerms, ", "))
	}
	if len(parts) == 0 {
		return "(none)"
	}
	return strings.Join(parts, "; ")
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

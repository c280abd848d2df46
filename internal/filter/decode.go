package filter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// rawFilter mirrors the parser's JSON schema with loose typing. Small local
// models sometimes emit numbers where strings belong (and vice versa), so
// every field is coerced rather than decoded strictly.
type rawFilter struct {
	Query        any   `json:"query"`
	IncludeTerms []any `json:"include_terms"`
	ExcludeTerms []any `json:"exclude_terms"`
	Genres       []any `json:"genres"`
	Actors       []any `json:"actors"`
	Directors    []any `json:"directors"`
	Year         any   `json:"year"`
	YearFrom     any   `json:"year_from"`
	YearTo       any   `json:"year_to"`
	Country      any   `json:"country"`
}

// Decode parses a filter update from provider JSON. Absent fields stay at
// their zero value, which Merge treats as "keep previous".
func Decode(data []byte) (Filter, error) {
	var raw rawFilter
	if err := json.Unmarshal(data, &raw); err != nil {
		return Filter{}, fmt.Errorf("decoding filter update: %w", err)
	}
	return Filter{
		Query:        coerceString(raw.Query),
		IncludeTerms: coerceStrings(raw.IncludeTerms),
		ExcludeTerms: coerceStrings(raw.ExcludeTerms),
		Genres:       coerceStrings(raw.Genres),
		Actors:       coerceStrings(raw.Actors),
		Directors:    coerceStrings(raw.Directors),
		Year:         coerceYear(raw.Year),
		YearFrom:     coerceYear(raw.YearFrom),
		YearTo:       coerceYear(raw.YearTo),
		Country:      coerceString(raw.Country),
	}, nil
}

func coerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		if s == float64(int(s)) {
			return strconv.Itoa(int(s))
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func coerceStrings(vs []any) []string {
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if s := coerceString(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceYear(v any) int {
	switch y := v.(type) {
	case nil:
		return 0
	case float64:
		return int(y)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(y))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

package rank

import (
	"sort"
	"strconv"
	"strings"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/filter"
)

// genreSynonyms maps iTunes primaryGenreName labels to simplified genre
// labels, so a request for "Fantasy" matches a candidate labelled
// "Sci-Fi & Fantasy" even when the word never appears in its description.
var genreSynonyms = map[string][]string{
	"Action & Adventure":  {"Action", "Adventure"},
	"Comedy":              {"Comedy"},
	"Documentary":         {"Documentary"},
	"Drama":               {"Drama"},
	"Horror":              {"Horror"},
	"Kids & Family":       {"Family"},
	"Romance":             {"Romance"},
	"Sci-Fi & Fantasy":    {"Sci-Fi", "Fantasy"},
	"Thriller":            {"Thriller"},
	"Western":             {"Western"},
	"Independent":         {"Indie"},
	"Music Documentaries": {"Music", "Documentary"},
	"Musicals":            {"Music"},
	"Sports":              {"Sports"},
}

// Rank removes candidates failing any hard-exclusion rule, then orders the
// survivors by descending score. Ties keep their relative input order.
func Rank(candidates []catalog.Candidate, f filter.Filter) []catalog.Candidate {
	type scored struct {
		candidate catalog.Candidate
		score     int
	}

	survivors := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if excluded(c, f) {
			continue
		}
		survivors = append(survivors, scored{candidate: c, score: Score(c, f)})
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].score > survivors[j].score
	})

	ranked := make([]catalog.Candidate, len(survivors))
	for i, s := range survivors {
		ranked[i] = s.candidate
	}
	return ranked
}

// excluded applies the hard-exclusion rules. Candidates with unparseable
// release dates survive the year checks.
func excluded(c catalog.Candidate, f filter.Filter) bool {
	hay := c.Haystack()

	for _, term := range f.ExcludeTerms {
		if term != "" && strings.Contains(hay, strings.ToLower(term)) {
			return true
		}
	}

	if year, ok := c.ReleaseYear(); ok {
		if f.Year != 0 && year != f.Year {
			return true
		}
		if f.YearFrom != 0 && year < f.YearFrom {
			return true
		}
		if f.YearTo != 0 && year > f.YearTo {
			return true
		}
	}

	if len(f.Genres) > 0 && !genreMatch(c, hay, f.Genres) {
		return true
	}

	return false
}

// genreMatch reports whether any requested genre appears in the haystack or
// maps to the candidate's provider genre label via the synonym table.
func genreMatch(c catalog.Candidate, hay string, genres []string) bool {
	for _, g := range genres {
		if g != "" && strings.Contains(hay, strings.ToLower(g)) {
			return true
		}
	}

	mapped := strings.ToLower(strings.Join(genreSynonyms[c.PrimaryGenre], " "))
	if mapped == "" {
		return false
	}
	for _, g := range genres {
		if g != "" && strings.Contains(mapped, strings.ToLower(g)) {
			return true
		}
	}
	return false
}

// Score computes the additive relevance score for one candidate.
func Score(c catalog.Candidate, f filter.Filter) int {
	hay := c.Haystack()
	s := 0

	for _, term := range f.IncludeTerms {
		if term != "" && strings.Contains(hay, strings.ToLower(term)) {
			s += 2
		}
	}
	for _, g := range f.Genres {
		if g != "" && strings.Contains(hay, strings.ToLower(g)) {
			s += 2
		}
	}
	for _, a := range f.Actors {
		if a != "" && strings.Contains(hay, strings.ToLower(a)) {
			s++
		}
	}

	if f.Year != 0 {
		year, ok := c.ReleaseYear()
		if strings.Contains(hay, strconv.Itoa(f.Year)) || (ok && abs(year-f.Year) <= 1) {
			s++
		}
	}

	// Exclusion already removed exact matches; this double-penalizes partial
	// leftovers such as multi-word terms split across fields.
	for _, term := range f.ExcludeTerms {
		if term != "" && strings.Contains(hay, strings.ToLower(term)) {
			s -= 3
		}
	}

	if year, ok := c.ReleaseYear(); ok {
		if bonus := (year - 1980) / 10; bonus > 0 {
			s += bonus
		}
	}

	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

package agent

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/models"
)

var artworkSizeRe = regexp.MustCompile(`\d+x\d+bb\.jpg`)

// movieFromCandidate projects one raw catalog candidate into the
// display-ready movie shape. The catalog provides no cast information, so
// Cast stays unset.
func movieFromCandidate(c catalog.Candidate) models.Movie {
	year, _ := c.ReleaseYear()

	poster := c.ArtworkURL100
	if poster == "" {
		poster = c.ArtworkURL60
	}
	if poster != "" {
		poster = artworkSizeRe.ReplaceAllString(poster, "600x600bb.jpg")
	}

	trailer := c.PreviewURL
	if trailer == "" {
		trailer = youtubeTrailerLink(c.Title(), year)
	}

	return models.Movie{
		Title:      c.Title(),
		Year:       year,
		Genre:      c.PrimaryGenre,
		Overview:   c.Description(),
		PosterURL:  poster,
		TrailerURL: trailer,
		Source:     "iTunes",
		TrackID:    c.TrackID,
	}
}

// youtubeTrailerLink builds a YouTube search link as a trailer fallback.
func youtubeTrailerLink(title string, year int) string {
	q := title + " trailer"
	if year != 0 {
		q = fmt.Sprintf("%s %d", q, year)
	}
	params := url.Values{}
	params.Set("search_query", q)
	return "https://www.youtube.com/results?" + params.Encode()
}

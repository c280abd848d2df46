package catalog

import (
	"strconv"
	"strings"
)

// Candidate is one raw result from the iTunes Search API. It is never
// mutated after decoding.
type Candidate struct {
	TrackID          int    `json:"trackId"`
	TrackName        string `json:"trackName"`
	CollectionName   string `json:"collectionName"`
	PrimaryGenre     string `json:"primaryGenreName"`
	ReleaseDate      string `json:"releaseDate"`
	LongDescription  string `json:"longDescription"`
	ShortDescription string `json:"shortDescription"`
	ArtworkURL100    string `json:"artworkUrl100"`
	ArtworkURL60     string `json:"artworkUrl60"`
	PreviewURL       string `json:"previewUrl"`
}

// Title returns the track name, falling back to the collection name.
func (c Candidate) Title() string {
	if c.TrackName != "" {
		return c.TrackName
	}
	return c.CollectionName
}

// Description returns the long description, falling back to the short one.
func (c Candidate) Description() string {
	if c.LongDescription != "" {
		return c.LongDescription
	}
	return c.ShortDescription
}

// ReleaseYear parses the leading year of the release-date string.
// ok is false when the date is absent or unparseable.
func (c Candidate) ReleaseYear() (int, bool) {
	if len(c.ReleaseDate) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(c.ReleaseDate[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

// Haystack is the lowercased searchable text used for substring matching.
func (c Candidate) Haystack() string {
	return strings.ToLower(c.Title() + " " + c.PrimaryGenre + " " + c.Description())
}

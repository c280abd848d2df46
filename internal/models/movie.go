package models

// Movie is the normalized, display-ready projection of one catalog
// candidate. Created once per search; only enrichment may later fill a
// missing Overview.
type Movie struct {
	Title      string   `json:"title"`
	Year       int      `json:"year,omitempty"`
	Genre      string   `json:"genre,omitempty"`
	Overview   string   `json:"overview,omitempty"`
	Cast       []string `json:"cast,omitempty"`
	PosterURL  string   `json:"poster_url,omitempty"`
	TrailerURL string   `json:"trailer_url,omitempty"`
	Source     string   `json:"source,omitempty"`
	TrackID    int      `json:"track_id,omitempty"`
}

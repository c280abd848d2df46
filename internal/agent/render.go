package agent

import (
	"fmt"
	"strings"

	"github.com/reelpick/reelpick/internal/models"
)

const briefOverviewLimit = 180

// RenderBrief formats one result for a numbered list view.
func RenderBrief(idx int, m models.Movie) string {
	head := fmt.Sprintf("%d. %s", idx, m.Title)
	if m.Year != 0 {
		head += fmt.Sprintf(" (%d)", m.Year)
	}

	parts := []string{head}
	if m.Genre != "" {
		parts = append(parts, "   Genre: "+m.Genre)
	}
	if m.Overview != "" {
		parts = append(parts, "   "+truncate(m.Overview, briefOverviewLimit))
	}
	if m.PosterURL != "" {
		parts = append(parts, "   Poster: "+m.PosterURL)
	}
	if m.TrailerURL != "" {
		parts = append(parts, "   Trailer: "+m.TrailerURL)
	}
	return strings.Join(parts, "\n")
}

// RenderFull formats one result with every known field, untruncated.
func RenderFull(m models.Movie) string {
	lines := []string{"Title: " + m.Title}
	if m.Year != 0 {
		lines = append(lines, fmt.Sprintf("Year: %d", m.Year))
	}
	if m.Genre != "" {
		lines = append(lines, "Genre: "+m.Genre)
	}
	if len(m.Cast) > 0 {
		lines = append(lines, "Cast: "+strings.Join(m.Cast, ", "))
	}
	if m.Overview != "" {
		lines = append(lines, "Plot: "+m.Overview)
	}
	if m.PosterURL != "" {
		lines = append(lines, "Poster: "+m.PosterURL)
	}
	if m.TrailerURL != "" {
		lines = append(lines, "Trailer: "+m.TrailerURL)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n-1]), " ") + "…"
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SummaryRepository caches movie overviews fetched from the summary
// provider, keyed by movie title. It stores provider responses only, never
// session state.
type SummaryRepository struct {
	db *DB
}

func NewSummaryRepository(db *DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Get returns the cached overview for title. ok is false on a cache miss.
func (r *SummaryRepository) Get(ctx context.Context, title string) (string, bool, error) {
	query := `SELECT overview FROM summaries WHERE title = ?`

	var overview string
	err := r.db.conn.QueryRowContext(ctx, query, title).Scan(&overview)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query summary: %w", err)
	}
	return overview, true, nil
}

// Put stores or replaces the cached overview for title.
func (r *SummaryRepository) Put(ctx context.Context, title, overview string) error {
	query := `INSERT OR REPLACE INTO summaries (title, overview, fetched_at) VALUES (?, ?, ?)`

	_, err := r.db.conn.ExecContext(ctx, query, title, overview, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}
	return nil
}

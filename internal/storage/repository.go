// Package storage persists the visit log in a local sqlite database.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Visit is one recorded page load.
type Visit struct {
	URL       string
	Title     string
	VisitedAt time.Time
}

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS visits (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  url TEXT NOT NULL,
  title TEXT NOT NULL,
  visited_at TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (r *Repository) SaveVisit(ctx context.Context, url, title string) error {
	visitedAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO visits (url, title, visited_at)
VALUES (?, ?, ?)
`, url, title, visitedAt)
	if err != nil {
		return fmt.Errorf("save visit %s: %w", url, err)
	}
	return nil
}

func (r *Repository) RecentVisits(ctx context.Context, limit int) ([]Visit, error) {
	if limit < 1 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT url, title, visited_at
FROM visits
ORDER BY id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	visits := make([]Visit, 0, limit)
	for rows.Next() {
		var visit Visit
		var visitedAt string
		if err := rows.Scan(&visit.URL, &visit.Title, &visitedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}

		visit.VisitedAt, err = time.Parse(time.RFC3339Nano, visitedAt)
		if err != nil {
			return nil, fmt.Errorf("parse visited_at %q: %w", visitedAt, err)
		}
		visits = append(visits, visit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return visits, nil
}

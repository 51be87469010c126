package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ciphernom/rektcast/internal/domain/models"
	domrepo "github.com/ciphernom/rektcast/internal/domain/repository"
	pkgch "github.com/ciphernom/rektcast/pkg/clickhouse"
)

const headlinesTable = "rektcast.headlines"

// CHHeadlineStore implements HeadlineStore backed by ClickHouse. Dedup by
// title happens on read; the table keeps everything.
type CHHeadlineStore struct {
	db *sql.DB
}

func NewCHHeadlineStore(ch *pkgch.Client) *CHHeadlineStore {
	return &CHHeadlineStore{db: ch.DB()}
}

var _ domrepo.HeadlineStore = (*CHHeadlineStore)(nil)

func (s *CHHeadlineStore) Recent(ctx context.Context, limit int) ([]models.Headline, error) {
	if limit <= 0 {
		limit = 25
	}
	const qtpl = `
        SELECT title, any(source), any(url), max(ts)
        FROM %s
        GROUP BY title
        ORDER BY max(ts) DESC
        LIMIT ?
    `
	q := fmt.Sprintf(qtpl, headlinesTable)
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("recent headlines: %w", err)
	}
	defer rows.Close()

	out := make([]models.Headline, 0, limit)
	for rows.Next() {
		var h models.Headline
		if err := rows.Scan(&h.Title, &h.Source, &h.URL, &h.Timestamp); err != nil {
			return nil, fmt.Errorf("scan headline: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *CHHeadlineStore) Store(ctx context.Context, hs []models.Headline) error {
	if len(hs) == 0 {
		return nil
	}
	values := make([]string, 0, len(hs))
	args := make([]interface{}, 0, len(hs)*4)
	for _, h := range hs {
		if h.Title == "" {
			continue
		}
		ts := h.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, ts, h.Title, h.Source, h.URL)
	}
	if len(values) == 0 {
		return nil
	}
	q := fmt.Sprintf("INSERT INTO %s (ts, title, source, url) VALUES %s", headlinesTable, strings.Join(values, ","))
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("store headlines: %w", err)
	}
	return nil
}

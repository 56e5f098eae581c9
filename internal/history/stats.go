package history

import (
	"context"
	"database/sql"
	"time"
)

// Stats aggregates lifetime drilling totals.
type Stats struct {
	Sessions int
	Answers  int
	Known    int
	// Accuracy is Known/Answers, zero when nothing has been answered.
	Accuracy float64
}

// SessionSummary is one row of the recent-sessions listing.
type SessionSummary struct {
	ID         string
	StartedAt  time.Time
	EndedAt    time.Time
	Finished   bool
	CardsShown int
	CardsKnown int
	PoolStart  int
	PoolEnd    int
}

// Reader is the query side consumed by the stats screen and `ordkort stats`.
type Reader interface {
	Stats(ctx context.Context) (*Stats, error)
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)
}

var _ Reader = (*Store)(nil)

// Stats returns lifetime totals across all sessions.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	out := &Stats{}
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions`).Scan(&out.Sessions)
	if err != nil {
		return nil, err
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(known), 0) FROM answers`).Scan(&out.Answers, &out.Known)
	if err != nil {
		return nil, err
	}
	if out.Answers > 0 {
		out.Accuracy = float64(out.Known) / float64(out.Answers)
	}
	return out, nil
}

// RecentSessions returns the most recent sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, cards_shown, cards_known, pool_start, pool_end
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var (
			sum   SessionSummary
			ended sql.NullTime
		)
		err := rows.Scan(&sum.ID, &sum.StartedAt, &ended,
			&sum.CardsShown, &sum.CardsKnown, &sum.PoolStart, &sum.PoolEnd)
		if err != nil {
			return nil, err
		}
		if ended.Valid {
			sum.EndedAt = ended.Time
			sum.Finished = true
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

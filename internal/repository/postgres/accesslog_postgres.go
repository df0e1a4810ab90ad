package postgres

import (
	"context"
	"database/sql"
	"time"

	"campusdocs/internal/model"
	"campusdocs/internal/repository"
)

// AccessLogPostgres is a PostgreSQL implementation of repository.AccessLogRepository.
// The access_log table is append-only; this type never issues UPDATE or DELETE.
type AccessLogPostgres struct {
	db *sql.DB
}

// NewAccessLogPostgres creates a new AccessLogPostgres repository.
func NewAccessLogPostgres(db *sql.DB) *AccessLogPostgres {
	return &AccessLogPostgres{db: db}
}

var _ repository.AccessLogRepository = (*AccessLogPostgres)(nil)

// Append inserts one immutable log entry.
func (r *AccessLogPostgres) Append(ctx context.Context, entry *model.AccessLogEntry) error {
	const q = `
		INSERT INTO access_log (id, content_id, user_id, action, ip_address, user_agent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		entry.ID,
		entry.ContentID,
		entry.UserID,
		entry.Action,
		nullString(entry.IPAddress),
		nullString(entry.UserAgent),
		entry.OccurredAt,
	)
	return err
}

// CountByUserSince counts the user's entries with the given action at or after since.
func (r *AccessLogPostgres) CountByUserSince(ctx context.Context, userID, action string, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM access_log WHERE user_id = $1 AND action = $2 AND occurred_at >= $3`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID, action, since).Scan(&n)
	return n, err
}

// CountByUserContentSince is CountByUserSince scoped to one content.
func (r *AccessLogPostgres) CountByUserContentSince(ctx context.Context, userID, contentID, action string, since time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM access_log WHERE user_id = $1 AND content_id = $2 AND action = $3 AND occurred_at >= $4`
	var n int
	err := r.db.QueryRowContext(ctx, q, userID, contentID, action, since).Scan(&n)
	return n, err
}

// UserStats aggregates a user's entries: lifetime total, entries since
// todaySince, and distinct contents touched.
func (r *AccessLogPostgres) UserStats(ctx context.Context, userID string, todaySince time.Time) (*repository.AccessStats, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE occurred_at >= $2),
		       COUNT(DISTINCT content_id)
		FROM access_log
		WHERE user_id = $1
	`
	var s repository.AccessStats
	if err := r.db.QueryRowContext(ctx, q, userID, todaySince).Scan(&s.Total, &s.Today, &s.DistinctCount); err != nil {
		return nil, err
	}
	return &s, nil
}

// ContentStats aggregates a content's entries with distinct readers.
func (r *AccessLogPostgres) ContentStats(ctx context.Context, contentID string, todaySince time.Time) (*repository.AccessStats, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE occurred_at >= $2),
		       COUNT(DISTINCT user_id)
		FROM access_log
		WHERE content_id = $1
	`
	var s repository.AccessStats
	if err := r.db.QueryRowContext(ctx, q, contentID, todaySince).Scan(&s.Total, &s.Today, &s.DistinctCount); err != nil {
		return nil, err
	}
	return &s, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

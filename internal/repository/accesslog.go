package repository

import (
	"context"
	"time"

	"campusdocs/internal/model"
)

// AccessStats is the aggregate read-only view over one side of the log:
// per user (DistinctCount = distinct contents touched) or per content
// (DistinctCount = distinct users).
type AccessStats struct {
	Total         int `json:"total"`
	Today         int `json:"today"`
	DistinctCount int `json:"distinct_count"`
}

// AccessLogRepository defines data access for the append-only access log.
// Rows are inserted by the gate and read back to compute rolling daily
// counters; nothing updates or deletes them in normal operation.
type AccessLogRepository interface {
	// Append inserts one immutable log entry.
	Append(ctx context.Context, entry *model.AccessLogEntry) error

	// CountByUserSince counts the user's entries with the given action at or
	// after since.
	CountByUserSince(ctx context.Context, userID, action string, since time.Time) (int, error)

	// CountByUserContentSince is CountByUserSince scoped to one content.
	CountByUserContentSince(ctx context.Context, userID, contentID, action string, since time.Time) (int, error)

	// UserStats aggregates a user's entries; todaySince marks the current
	// quota window boundary.
	UserStats(ctx context.Context, userID string, todaySince time.Time) (*AccessStats, error)

	// ContentStats aggregates a content's entries.
	ContentStats(ctx context.Context, contentID string, todaySince time.Time) (*AccessStats, error)
}

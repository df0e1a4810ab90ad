// Package quota enforces per-user daily view-rate ceilings derived from the
// append-only access log. Windows are rolling local calendar days; counters
// are recomputed from the log on every check, so the engine holds no shared
// mutable state and is safe for concurrent use.
//
// The check-then-log sequence is not atomic: the admission check and the
// eventual log append are separated by I/O, so a burst of concurrent requests
// for the same content can transiently exceed the per-content ceiling by the
// width of the burst. This is an accepted soft-limit design.
package quota

import (
	"context"
	"fmt"
	"time"

	"campusdocs/internal/config"
	"campusdocs/internal/i18n"
	"campusdocs/internal/model"
	"campusdocs/internal/repository"
)

// Status is the outcome of a quota admission check.
type Status struct {
	Allowed             bool   `json:"allowed"`
	Reason              string `json:"reason,omitempty"`
	DailyStreams        int    `json:"daily_streams"`
	DailyLimit          int    `json:"daily_limit"`
	ContentStreamsToday int    `json:"content_streams_today"`
	ContentLimit        int    `json:"content_limit"`
}

// ExceededError is returned when a non-privileged caller is over budget.
// Message is localized and safe to surface; it is actionable for the client,
// unlike parse failures.
type ExceededError struct {
	Status  Status
	Message string
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %s", e.Message)
}

// Engine computes quota windows from the access log. It never decides who is
// exempt; privileged bypass is a caller policy.
type Engine struct {
	logs repository.AccessLogRepository
	cfg  config.QuotaConfig
	loc  *i18n.Localizer
	tz   *time.Location
	now  func() time.Time
}

// NewEngine builds an Engine evaluating windows against local calendar
// midnight in tz.
func NewEngine(logs repository.AccessLogRepository, cfg config.QuotaConfig, loc *i18n.Localizer, tz *time.Location) *Engine {
	if tz == nil {
		tz = time.Local
	}
	return &Engine{logs: logs, cfg: cfg, loc: loc, tz: tz, now: time.Now}
}

// windowStart returns local calendar midnight of the current day.
func (e *Engine) windowStart() time.Time {
	now := e.now().In(e.tz)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.tz)
}

// Check computes the caller's stream counters since local midnight and
// evaluates them in order: the global daily ceiling first, then the
// per-content ceiling. A user over both budgets is denied with the global
// reason. Reason holds the i18n message key of the limit hit.
func (e *Engine) Check(ctx context.Context, userID, contentID string) (*Status, error) {
	since := e.windowStart()

	daily, err := e.logs.CountByUserSince(ctx, userID, model.ActionStream, since)
	if err != nil {
		return nil, fmt.Errorf("count daily streams: %w", err)
	}
	content, err := e.logs.CountByUserContentSince(ctx, userID, contentID, model.ActionStream, since)
	if err != nil {
		return nil, fmt.Errorf("count content streams: %w", err)
	}

	st := &Status{
		DailyStreams:        daily,
		DailyLimit:          e.cfg.DailyStreamLimit,
		ContentStreamsToday: content,
		ContentLimit:        e.cfg.PerContentDailyLimit,
	}

	switch {
	case daily >= e.cfg.DailyStreamLimit:
		st.Reason = i18n.KeyQuotaDailyLimit
	case content >= e.cfg.PerContentDailyLimit:
		st.Reason = i18n.KeyQuotaContentLimit
	default:
		st.Allowed = true
	}
	return st, nil
}

// AssertWithinQuota returns an ExceededError carrying the localized reason
// when the caller is over budget. Privileged callers must bypass this call
// entirely; that policy decision belongs to the caller, not the engine.
func (e *Engine) AssertWithinQuota(ctx context.Context, userID, contentID, lang string) error {
	st, err := e.Check(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if !st.Allowed {
		return &ExceededError{Status: *st, Message: e.loc.Translate(st.Reason, lang)}
	}
	return nil
}

// LogAccess appends one entry to the access log. Callers on the hot path are
// expected to invoke this asynchronously and capture (not surface) failures.
func (e *Engine) LogAccess(ctx context.Context, entry *model.AccessLogEntry) error {
	return e.logs.Append(ctx, entry)
}

// UserStats returns the aggregate view of one user's reads.
func (e *Engine) UserStats(ctx context.Context, userID string) (*repository.AccessStats, error) {
	return e.logs.UserStats(ctx, userID, e.windowStart())
}

// ContentStats returns the aggregate view of one content's reads.
func (e *Engine) ContentStats(ctx context.Context, contentID string) (*repository.AccessStats, error) {
	return e.logs.ContentStats(ctx, contentID, e.windowStart())
}

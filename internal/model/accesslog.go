package model

import "time"

// Access log actions. Full-file delivery and page-by-page reading are tracked
// under different actions; quota windows are computed over stream entries only.
const (
	ActionView     = "view"
	ActionStream   = "stream"
	ActionDownload = "download"
)

// AccessLogEntry is an immutable, append-only record of a successful read.
// Entries are never mutated or deleted in normal operation.
type AccessLogEntry struct {
	ID         string    `json:"id"`
	ContentID  string    `json:"content_id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ClientInfo carries request metadata captured into access log entries.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

package model

import "time"

// Approval states for uploaded content.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// MimePDF is the only mime type eligible for watermarking and paginated delivery.
const MimePDF = "application/pdf"

// ContentAsset represents one uploaded document owned by a professor within a subject.
// This is a pure domain model with no database-specific dependencies or tags.
// The stored file is immutable once uploaded; only ApprovalStatus and the lazily
// computed PageCount change after creation.
type ContentAsset struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	SubjectID      string    `json:"subject_id"`
	Title          string    `json:"title"`
	Filename       string    `json:"filename"`
	ApprovalStatus string    `json:"approval_status"`
	StorageKey     string    `json:"storage_key"`
	MimeType       string    `json:"mime_type"`
	ByteSize       int64     `json:"byte_size"`
	PageCount      *int      `json:"page_count,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsPDF reports whether the asset can go through the watermark/extraction pipeline.
func (a *ContentAsset) IsPDF() bool {
	return a.MimeType == MimePDF
}

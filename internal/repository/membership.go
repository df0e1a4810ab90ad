package repository

import "context"

// MembershipRepository answers subject enrollment queries. Enrollment rows
// are written by the external catalog service; this side only reads them.
type MembershipRepository interface {
	// IsMember reports whether the user is assigned to the subject
	// (as student or professor).
	IsMember(ctx context.Context, userID, subjectID string) (bool, error)
}

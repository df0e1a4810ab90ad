package postgres

import (
	"context"
	"database/sql"

	"campusdocs/internal/repository"
)

// MembershipPostgres is a read-only PostgreSQL implementation of
// repository.MembershipRepository over the subject_members table.
type MembershipPostgres struct {
	db *sql.DB
}

// NewMembershipPostgres creates a new MembershipPostgres repository.
func NewMembershipPostgres(db *sql.DB) *MembershipPostgres {
	return &MembershipPostgres{db: db}
}

var _ repository.MembershipRepository = (*MembershipPostgres)(nil)

// IsMember reports whether the user is assigned to the subject.
func (r *MembershipPostgres) IsMember(ctx context.Context, userID, subjectID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM subject_members WHERE user_id = $1 AND subject_id = $2)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, userID, subjectID).Scan(&ok)
	return ok, err
}

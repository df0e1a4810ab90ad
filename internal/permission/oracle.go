// Package permission decides whether a principal may access a piece of
// content at all. The gate consults this oracle before any quota or
// transformation work runs.
package permission

import (
	"context"
	"fmt"

	"campusdocs/internal/model"
	"campusdocs/internal/repository"
)

// Oracle answers content access questions.
type Oracle interface {
	// CanAccessContent reports whether the principal may read the asset.
	CanAccessContent(ctx context.Context, p model.Principal, asset *model.ContentAsset) (bool, error)
}

// membershipOracle grants access to super admins, faculty admins, the owner,
// and subject members reading approved content.
type membershipOracle struct {
	members repository.MembershipRepository
}

// NewMembershipOracle builds the default Oracle over subject enrollment rows.
func NewMembershipOracle(members repository.MembershipRepository) Oracle {
	return &membershipOracle{members: members}
}

func (o *membershipOracle) CanAccessContent(ctx context.Context, p model.Principal, asset *model.ContentAsset) (bool, error) {
	if p.IsSuperAdmin || p.ActiveRole == model.RoleFacultyAdmin {
		return true, nil
	}
	if p.UserID == asset.OwnerID {
		return true, nil
	}
	// Everyone else only sees approved content of subjects they belong to.
	if asset.ApprovalStatus != model.ApprovalApproved {
		return false, nil
	}
	ok, err := o.members.IsMember(ctx, p.UserID, asset.SubjectID)
	if err != nil {
		return false, fmt.Errorf("membership lookup: %w", err)
	}
	return ok, nil
}

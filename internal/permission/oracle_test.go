package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"campusdocs/internal/model"
	repoMocks "campusdocs/internal/repository/mocks"
)

func TestMembershipOracle_CanAccessContent(t *testing.T) {
	ctx := context.Background()
	asset := &model.ContentAsset{
		ID:             "content-1",
		OwnerID:        "prof-1",
		SubjectID:      "subj-1",
		ApprovalStatus: model.ApprovalApproved,
	}

	tests := []struct {
		name       string
		principal  model.Principal
		asset      *model.ContentAsset
		setupMocks func(m *repoMocks.MockMembershipRepository)
		want       bool
		wantErr    bool
	}{
		{
			name:      "super admin always allowed",
			principal: model.Principal{UserID: "admin", IsSuperAdmin: true},
			asset:     asset,
			want:      true,
		},
		{
			name:      "faculty admin always allowed",
			principal: model.Principal{UserID: "fadmin", ActiveRole: model.RoleFacultyAdmin},
			asset:     asset,
			want:      true,
		},
		{
			name:      "owner allowed regardless of approval",
			principal: model.Principal{UserID: "prof-1", ActiveRole: model.RoleProfessor},
			asset:     &model.ContentAsset{OwnerID: "prof-1", SubjectID: "subj-1", ApprovalStatus: model.ApprovalPending},
			want:      true,
		},
		{
			name:      "member student reading approved content",
			principal: model.Principal{UserID: "stud-1", ActiveRole: model.RoleStudent},
			asset:     asset,
			setupMocks: func(m *repoMocks.MockMembershipRepository) {
				m.On("IsMember", ctx, "stud-1", "subj-1").Return(true, nil)
			},
			want: true,
		},
		{
			name:      "non-member student denied",
			principal: model.Principal{UserID: "stud-2", ActiveRole: model.RoleStudent},
			asset:     asset,
			setupMocks: func(m *repoMocks.MockMembershipRepository) {
				m.On("IsMember", ctx, "stud-2", "subj-1").Return(false, nil)
			},
			want: false,
		},
		{
			name:      "pending content hidden from members",
			principal: model.Principal{UserID: "stud-1", ActiveRole: model.RoleStudent},
			asset:     &model.ContentAsset{OwnerID: "prof-1", SubjectID: "subj-1", ApprovalStatus: model.ApprovalPending},
			want:      false,
		},
		{
			name:      "membership lookup error",
			principal: model.Principal{UserID: "stud-1", ActiveRole: model.RoleStudent},
			asset:     asset,
			setupMocks: func(m *repoMocks.MockMembershipRepository) {
				m.On("IsMember", ctx, "stud-1", "subj-1").Return(false, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			members := new(repoMocks.MockMembershipRepository)
			if tt.setupMocks != nil {
				tt.setupMocks(members)
			}
			oracle := NewMembershipOracle(members)

			got, err := oracle.CanAccessContent(ctx, tt.principal, tt.asset)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			members.AssertExpectations(t)
		})
	}
}

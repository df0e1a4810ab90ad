package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"campusdocs/internal/model"
	"campusdocs/internal/service"
)

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) Upload(ctx context.Context, p model.Principal, r io.Reader, in service.UploadInput) (*model.ContentAsset, error) {
	args := m.Called(ctx, p, r, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentAsset), args.Error(1)
}

func (m *MockContentService) List(ctx context.Context, subjectID string, limit, offset int) (*service.ContentListResult, error) {
	args := m.Called(ctx, subjectID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ContentListResult), args.Error(1)
}

func (m *MockContentService) Get(ctx context.Context, id string) (*model.ContentAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentAsset), args.Error(1)
}

func (m *MockContentService) SetApproval(ctx context.Context, p model.Principal, id, status string) error {
	args := m.Called(ctx, p, id, status)
	return args.Error(0)
}

func (m *MockContentService) Delete(ctx context.Context, p model.Principal, id string) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

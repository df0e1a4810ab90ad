package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campusdocs/internal/model"
	"campusdocs/internal/repository"
)

type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) Create(ctx context.Context, asset *model.ContentAsset) (*model.ContentAsset, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentAsset), args.Error(1)
}

func (m *MockContentRepository) FindByID(ctx context.Context, id string) (*model.ContentAsset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContentAsset), args.Error(1)
}

func (m *MockContentRepository) List(ctx context.Context, subjectID string, pq repository.PageQuery) (*repository.PageResult[model.ContentAsset], error) {
	args := m.Called(ctx, subjectID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.ContentAsset]), args.Error(1)
}

func (m *MockContentRepository) UpdatePageCount(ctx context.Context, id string, pageCount int) error {
	args := m.Called(ctx, id, pageCount)
	return args.Error(0)
}

func (m *MockContentRepository) UpdateApproval(ctx context.Context, id string, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockContentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

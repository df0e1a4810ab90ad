package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campusdocs/internal/model"
	"campusdocs/internal/repository"
)

type MockAccessLogRepository struct {
	mock.Mock
}

func (m *MockAccessLogRepository) Append(ctx context.Context, entry *model.AccessLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAccessLogRepository) CountByUserSince(ctx context.Context, userID, action string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, action, since)
	return args.Int(0), args.Error(1)
}

func (m *MockAccessLogRepository) CountByUserContentSince(ctx context.Context, userID, contentID, action string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, contentID, action, since)
	return args.Int(0), args.Error(1)
}

func (m *MockAccessLogRepository) UserStats(ctx context.Context, userID string, todaySince time.Time) (*repository.AccessStats, error) {
	args := m.Called(ctx, userID, todaySince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AccessStats), args.Error(1)
}

func (m *MockAccessLogRepository) ContentStats(ctx context.Context, contentID string, todaySince time.Time) (*repository.AccessStats, error) {
	args := m.Called(ctx, contentID, todaySince)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.AccessStats), args.Error(1)
}

type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) IsMember(ctx context.Context, userID, subjectID string) (bool, error) {
	args := m.Called(ctx, userID, subjectID)
	return args.Bool(0), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"campusdocs/internal/model"
	"campusdocs/internal/quota"
	"campusdocs/internal/service"
)

type MockAccessGate struct {
	mock.Mock
}

func (m *MockAccessGate) Stream(ctx context.Context, p model.Principal, contentID, lang string, client model.ClientInfo) (*service.StreamResult, error) {
	args := m.Called(ctx, p, contentID, lang, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StreamResult), args.Error(1)
}

func (m *MockAccessGate) Pages(ctx context.Context, p model.Principal, contentID, lang string, start, count int, client model.ClientInfo) (*service.PageChunkResult, error) {
	args := m.Called(ctx, p, contentID, lang, start, count, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PageChunkResult), args.Error(1)
}

func (m *MockAccessGate) PageCount(ctx context.Context, p model.Principal, contentID string) (*service.PageCountResult, error) {
	args := m.Called(ctx, p, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PageCountResult), args.Error(1)
}

func (m *MockAccessGate) Quota(ctx context.Context, p model.Principal, contentID string) (*quota.Status, error) {
	args := m.Called(ctx, p, contentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quota.Status), args.Error(1)
}

func (m *MockAccessGate) DownloadURL(ctx context.Context, p model.Principal, contentID string, client model.ClientInfo) (string, error) {
	args := m.Called(ctx, p, contentID, client)
	return args.String(0), args.Error(1)
}

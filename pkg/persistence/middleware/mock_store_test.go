package middleware_test

import (
	"context"

	"github.com/aretw0/glyphgrid/pkg/ports"
	"github.com/stretchr/testify/mock"
)

// MockStore records calls so tests can assert pass-through behavior.
type MockStore struct {
	mock.Mock
}

func (s *MockStore) Save(ctx context.Context, sessionID string, data []byte) error {
	args := s.Called(ctx, sessionID, data)
	return args.Error(0)
}

func (s *MockStore) Load(ctx context.Context, sessionID string) ([]byte, error) {
	args := s.Called(ctx, sessionID)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (s *MockStore) Delete(ctx context.Context, sessionID string) error {
	args := s.Called(ctx, sessionID)
	return args.Error(0)
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	args := s.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

var _ ports.SnapshotStore = (*MockStore)(nil)

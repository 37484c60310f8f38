package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sovbridge/internal/sov"
)

// MockRecordStore is a mock implementation of port.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) ReplaceForFile(ctx context.Context, fileID uuid.UUID, rs *sov.ResultSet) error {
	args := m.Called(ctx, fileID, rs)
	return args.Error(0)
}

func (m *MockRecordStore) ListProperties(ctx context.Context, fileID uuid.UUID) ([]*sov.PropertyRecord, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sov.PropertyRecord), args.Error(1)
}

func (m *MockRecordStore) ListBuildings(ctx context.Context, fileID uuid.UUID) ([]*sov.BuildingRecord, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sov.BuildingRecord), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sovbridge/internal/domain"
)

// MockSOVFileRepo is a mock implementation of port.SOVFileRepository.
type MockSOVFileRepo struct {
	mock.Mock
}

func (m *MockSOVFileRepo) Create(ctx context.Context, file *domain.SOVFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockSOVFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SOVFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SOVFile), args.Error(1)
}

func (m *MockSOVFileRepo) List(ctx context.Context, offset, limit int) ([]domain.SOVFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SOVFile), args.Int(1), args.Error(2)
}

func (m *MockSOVFileRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSOVFileRepo) MarkCompleted(ctx context.Context, id uuid.UUID, sheetCount, propertyCount, buildingCount int) error {
	args := m.Called(ctx, id, sheetCount, propertyCount, buildingCount)
	return args.Error(0)
}

func (m *MockSOVFileRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockSOVFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.SOVFile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SOVFile), args.Error(1)
}

func (m *MockSOVFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"sovbridge/internal/domain"
	"sovbridge/internal/service"
	"sovbridge/internal/sov"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) ParseUpload(ctx context.Context, input service.FileUploadInput) (*domain.SOVFile, *service.ExtractionResult, error) {
	args := m.Called(ctx, input)
	var file *domain.SOVFile
	if args.Get(0) != nil {
		file = args.Get(0).(*domain.SOVFile)
	}
	var result *service.ExtractionResult
	if args.Get(1) != nil {
		result = args.Get(1).(*service.ExtractionResult)
	}
	return file, result, args.Error(2)
}

func (m *MockFileService) ReExtract(ctx context.Context, id uuid.UUID, mode domain.ExtractionMode) (*domain.SOVFile, *service.ExtractionResult, error) {
	args := m.Called(ctx, id, mode)
	var file *domain.SOVFile
	if args.Get(0) != nil {
		file = args.Get(0).(*domain.SOVFile)
	}
	var result *service.ExtractionResult
	if args.Get(1) != nil {
		result = args.Get(1).(*service.ExtractionResult)
	}
	return file, result, args.Error(2)
}

func (m *MockFileService) ExtractStored(ctx context.Context, file *domain.SOVFile) (*service.ExtractionResult, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractionResult), args.Error(1)
}

func (m *MockFileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SOVFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SOVFile), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, offset, limit int) ([]domain.SOVFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SOVFile), args.Int(1), args.Error(2)
}

func (m *MockFileService) Records(ctx context.Context, id uuid.UUID) (*sov.ResultSet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sov.ResultSet), args.Error(1)
}

func (m *MockFileService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

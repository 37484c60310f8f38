package port

import (
	"context"

	"github.com/google/uuid"

	"sovbridge/internal/domain"
)

// SOVFileRepository defines the contract for workbook metadata persistence.
type SOVFileRepository interface {
	Create(ctx context.Context, file *domain.SOVFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SOVFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.SOVFile, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error
	MarkCompleted(ctx context.Context, id uuid.UUID, sheetCount, propertyCount, buildingCount int) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	// ClaimQueued atomically claims up to limit queued files for processing,
	// moving them to processing status. Safe across concurrent workers.
	ClaimQueued(ctx context.Context, limit int) ([]domain.SOVFile, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

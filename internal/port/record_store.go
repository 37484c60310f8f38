package port

import (
	"context"

	"github.com/google/uuid"

	"sovbridge/internal/sov"
)

// RecordStore defines bulk persistence for extracted records. It has no
// schema dependency beyond the canonical field lists.
type RecordStore interface {
	// ReplaceForFile atomically replaces all records for one workbook with
	// the given result set. Re-extraction must not leave stale rows behind.
	ReplaceForFile(ctx context.Context, fileID uuid.UUID, rs *sov.ResultSet) error
	ListProperties(ctx context.Context, fileID uuid.UUID) ([]*sov.PropertyRecord, error)
	ListBuildings(ctx context.Context, fileID uuid.UUID) ([]*sov.BuildingRecord, error)
}

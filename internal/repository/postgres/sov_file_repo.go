package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"sovbridge/internal/domain"
	"sovbridge/internal/port"
)

type sovFileRepo struct {
	db *sqlx.DB
}

// NewSOVFileRepo creates a new PostgreSQL-backed SOVFileRepository.
func NewSOVFileRepo(db *sqlx.DB) port.SOVFileRepository {
	return &sovFileRepo{db: db}
}

func (r *sovFileRepo) Create(ctx context.Context, file *domain.SOVFile) error {
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now

	query := `INSERT INTO sov_files
		(id, file_name, original_name, file_size, s3_bucket, s3_key, content_type,
		 mode, status, extraction_error, sheet_count, property_count, building_count,
		 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID, file.FileName, file.OriginalName, file.FileSize, file.S3Bucket,
		file.S3Key, file.ContentType, file.Mode, file.Status, file.ExtractionError,
		file.SheetCount, file.PropertyCount, file.BuildingCount,
		file.CreatedAt, file.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sovFileRepo.Create: %w", err)
	}
	return nil
}

func (r *sovFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SOVFile, error) {
	var file domain.SOVFile
	err := r.db.GetContext(ctx, &file, "SELECT * FROM sov_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("sovFileRepo.GetByID: %w", err)
	}
	return &file, nil
}

func (r *sovFileRepo) List(ctx context.Context, offset, limit int) ([]domain.SOVFile, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sov_files"); err != nil {
		return nil, 0, fmt.Errorf("sovFileRepo.List count: %w", err)
	}

	var files []domain.SOVFile
	err := r.db.SelectContext(ctx, &files,
		"SELECT * FROM sov_files ORDER BY created_at DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("sovFileRepo.List: %w", err)
	}
	return files, total, nil
}

func (r *sovFileRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sov_files SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("sovFileRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sovFileRepo) MarkCompleted(ctx context.Context, id uuid.UUID, sheetCount, propertyCount, buildingCount int) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE sov_files SET
			status = $1, extraction_error = '', sheet_count = $2,
			property_count = $3, building_count = $4, extracted_at = $5, updated_at = $5
		 WHERE id = $6`,
		domain.FileStatusCompleted, sheetCount, propertyCount, buildingCount, now, id)
	if err != nil {
		return fmt.Errorf("sovFileRepo.MarkCompleted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *sovFileRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE sov_files SET status = $1, extraction_error = $2, updated_at = $3 WHERE id = $4",
		domain.FileStatusFailed, reason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("sovFileRepo.MarkFailed: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClaimQueued atomically moves up to limit queued files to processing status.
// SKIP LOCKED keeps concurrent workers from claiming the same file.
func (r *sovFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.SOVFile, error) {
	var files []domain.SOVFile
	err := r.db.SelectContext(ctx, &files,
		`UPDATE sov_files SET status = $1, updated_at = $2
		 WHERE id IN (
			SELECT id FROM sov_files
			WHERE status = $3
			ORDER BY created_at
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.FileStatusProcessing, time.Now().UTC(), domain.FileStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("sovFileRepo.ClaimQueued: %w", err)
	}
	return files, nil
}

func (r *sovFileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM sov_files WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("sovFileRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

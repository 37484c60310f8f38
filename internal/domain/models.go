package domain

import (
	"time"

	"github.com/google/uuid"
)

// SOVFile stores metadata about an uploaded SOV workbook and the state of
// its extraction run.
type SOVFile struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	FileName        string         `db:"file_name" json:"file_name"`
	OriginalName    string         `db:"original_name" json:"original_name"`
	FileSize        int64          `db:"file_size" json:"file_size"`
	S3Bucket        string         `db:"s3_bucket" json:"s3_bucket"`
	S3Key           string         `db:"s3_key" json:"s3_key"`
	ContentType     string         `db:"content_type" json:"content_type"`
	Mode            ExtractionMode `db:"mode" json:"mode"`
	Status          FileStatus     `db:"status" json:"status"`
	ExtractionError string         `db:"extraction_error" json:"extraction_error,omitempty"`
	SheetCount      int            `db:"sheet_count" json:"sheet_count"`
	PropertyCount   int            `db:"property_count" json:"property_count"`
	BuildingCount   int            `db:"building_count" json:"building_count"`
	ExtractedAt     *time.Time     `db:"extracted_at" json:"extracted_at"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// SheetError reports a sheet whose extraction failed inside an otherwise
// successful workbook run.
type SheetError struct {
	SheetName string `json:"sheet_name"`
	Message   string `json:"message"`
}

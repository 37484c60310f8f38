package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sovbridge/internal/config"
	"sovbridge/internal/domain"
	"sovbridge/internal/port"
	"sovbridge/internal/sov"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileUploadInput is the DTO for workbook upload requests. Mode may be empty
// to use the configured default.
type FileUploadInput struct {
	File   multipart.File
	Header *multipart.FileHeader
	Mode   domain.ExtractionMode
}

// FileService defines the workbook ingest and record retrieval contract.
type FileService interface {
	// ParseUpload archives the workbook, runs extraction synchronously, and
	// persists the resulting records.
	ParseUpload(ctx context.Context, input FileUploadInput) (*domain.SOVFile, *ExtractionResult, error)
	// ReExtract re-runs extraction from the archived workbook. An empty mode
	// keeps the file's stored mode.
	ReExtract(ctx context.Context, id uuid.UUID, mode domain.ExtractionMode) (*domain.SOVFile, *ExtractionResult, error)
	// ExtractStored runs extraction for a file already claimed by the queue
	// worker. The file must be in processing status.
	ExtractStored(ctx context.Context, file *domain.SOVFile) (*ExtractionResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SOVFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.SOVFile, int, error)
	Records(ctx context.Context, id uuid.UUID) (*sov.ResultSet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type fileService struct {
	fileRepo    port.SOVFileRepository
	records     port.RecordStore
	storage     port.ObjectStorage
	extractor   ExtractionService
	cfg         *config.S3Config
	defaultMode domain.ExtractionMode
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	fileRepo port.SOVFileRepository,
	records port.RecordStore,
	storage port.ObjectStorage,
	extractor ExtractionService,
	cfg *config.S3Config,
	defaultMode domain.ExtractionMode,
) FileService {
	return &fileService{
		fileRepo:    fileRepo,
		records:     records,
		storage:     storage,
		extractor:   extractor,
		cfg:         cfg,
		defaultMode: defaultMode,
	}
}

func (s *fileService) ParseUpload(ctx context.Context, input FileUploadInput) (*domain.SOVFile, *ExtractionResult, error) {
	if ext := strings.ToLower(filepath.Ext(input.Header.Filename)); ext != ".xlsx" {
		return nil, nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, nil, domain.ErrFileTooLarge
	}

	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, nil, fmt.Errorf("reading upload: %w", err)
	}

	// xlsx is a zip container; magic-byte sniffing sees the archive, not the
	// spreadsheet MIME type.
	sniffLen := len(data)
	if sniffLen > 512 {
		sniffLen = 512
	}
	switch http.DetectContentType(data[:sniffLen]) {
	case "application/zip", "application/octet-stream":
	default:
		return nil, nil, domain.ErrUnsupportedFileType
	}

	mode := input.Mode
	if mode == "" {
		mode = s.defaultMode
	}
	if !mode.Valid() {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("sov/%s/%s", fileID, input.Header.Filename)

	file := &domain.SOVFile{
		ID:           fileID,
		FileName:     fileID.String() + ".xlsx",
		OriginalName: input.Header.Filename,
		FileSize:     int64(len(data)),
		S3Bucket:     s.cfg.Bucket,
		S3Key:        s3Key,
		ContentType:  xlsxContentType,
		Mode:         mode,
		Status:       domain.FileStatusProcessing,
	}

	log.Printf("fileService.ParseUpload: ingesting %s (%d bytes, mode %s) as %s",
		input.Header.Filename, len(data), mode, fileID)

	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, nil, fmt.Errorf("creating file record: %w", err)
	}

	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Key:         s3Key,
		Body:        bytes.NewReader(data),
		ContentType: xlsxContentType,
		Size:        file.FileSize,
	}); err != nil {
		log.Printf("fileService.ParseUpload: archive upload failed for %s: %v", fileID, err)
		_ = s.fileRepo.MarkFailed(ctx, fileID, "archiving workbook failed")
		return nil, nil, domain.ErrUploadFailed
	}

	result, err := s.extract(ctx, file, data)
	if err != nil {
		return file, nil, err
	}
	return file, result, nil
}

func (s *fileService) ReExtract(ctx context.Context, id uuid.UUID, mode domain.ExtractionMode) (*domain.SOVFile, *ExtractionResult, error) {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if mode != "" {
		if !mode.Valid() {
			return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
		}
		file.Mode = mode
	}

	if err := s.fileRepo.UpdateStatus(ctx, id, domain.FileStatusProcessing); err != nil {
		return nil, nil, fmt.Errorf("marking file processing: %w", err)
	}
	file.Status = domain.FileStatusProcessing

	result, err := s.ExtractStored(ctx, file)
	if err != nil {
		return file, nil, err
	}
	return file, result, nil
}

func (s *fileService) ExtractStored(ctx context.Context, file *domain.SOVFile) (*ExtractionResult, error) {
	data, err := s.storage.Download(ctx, file.S3Key)
	if err != nil {
		reason := fmt.Sprintf("downloading workbook: %v", err)
		s.fail(ctx, file, reason)
		return nil, fmt.Errorf("downloading workbook for %s: %w", file.ID, err)
	}
	return s.extract(ctx, file, data)
}

// extract runs the pipeline and persists the outcome. The file is expected to
// be in processing status on entry.
func (s *fileService) extract(ctx context.Context, file *domain.SOVFile, data []byte) (*ExtractionResult, error) {
	result, err := s.extractor.ExtractWorkbook(ctx, file.OriginalName, data, file.Mode)
	if err != nil {
		s.fail(ctx, file, fmt.Sprintf("extraction: %v", err))
		return nil, err
	}

	if err := s.records.ReplaceForFile(ctx, file.ID, result.Records); err != nil {
		s.fail(ctx, file, fmt.Sprintf("persisting records: %v", err))
		return nil, fmt.Errorf("persisting records for %s: %w", file.ID, err)
	}

	for _, se := range result.SheetErrors {
		log.Printf("fileService.extract: file %s sheet %q: %s", file.ID, se.SheetName, se.Message)
	}

	propCount := len(result.Records.Properties)
	bldgCount := len(result.Records.Buildings)
	if err := s.fileRepo.MarkCompleted(ctx, file.ID, result.SheetCount, propCount, bldgCount); err != nil {
		return nil, fmt.Errorf("marking file completed: %w", err)
	}

	now := time.Now().UTC()
	file.Status = domain.FileStatusCompleted
	file.SheetCount = result.SheetCount
	file.PropertyCount = propCount
	file.BuildingCount = bldgCount
	file.ExtractedAt = &now
	file.ExtractionError = ""

	log.Printf("fileService.extract: file %s completed (%d sheets, %d properties, %d buildings, %d sheet errors)",
		file.ID, result.SheetCount, propCount, bldgCount, len(result.SheetErrors))

	return result, nil
}

func (s *fileService) fail(ctx context.Context, file *domain.SOVFile, reason string) {
	log.Printf("fileService: file %s failed: %s", file.ID, reason)
	file.Status = domain.FileStatusFailed
	file.ExtractionError = reason
	if err := s.fileRepo.MarkFailed(ctx, file.ID, reason); err != nil {
		log.Printf("fileService: failed to record failure for %s: %v", file.ID, err)
	}
}

func (s *fileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SOVFile, error) {
	return s.fileRepo.GetByID(ctx, id)
}

func (s *fileService) List(ctx context.Context, offset, limit int) ([]domain.SOVFile, int, error) {
	return s.fileRepo.List(ctx, offset, limit)
}

func (s *fileService) Records(ctx context.Context, id uuid.UUID) (*sov.ResultSet, error) {
	if _, err := s.fileRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	props, err := s.records.ListProperties(ctx, id)
	if err != nil {
		return nil, err
	}
	bldgs, err := s.records.ListBuildings(ctx, id)
	if err != nil {
		return nil, err
	}
	return &sov.ResultSet{Properties: props, Buildings: bldgs}, nil
}

func (s *fileService) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	log.Printf("fileService.Delete: deleting file %s", id)
	if err := s.storage.Delete(ctx, file.S3Key); err != nil {
		log.Printf("fileService.Delete: failed to delete archived workbook for %s: %v", id, err)
		return fmt.Errorf("deleting archived workbook: %w", err)
	}
	return s.fileRepo.Delete(ctx, id)
}

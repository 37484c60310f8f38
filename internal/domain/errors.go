package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInputFormat         = errors.New("unreadable workbook")
	ErrExtractionService   = errors.New("extraction service failed")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidMode         = errors.New("unknown extraction mode")
)

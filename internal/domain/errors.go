package domain

import "errors"

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoFiles             = errors.New("no files uploaded")
	ErrTooManyFiles        = errors.New("too many files in one batch")
	ErrMalformedDocument   = errors.New("malformed document")
	ErrExtractionFailed    = errors.New("invoice field extraction failed")
	ErrBuildingNotFound    = errors.New("no building matches the address")
	ErrDirectoryEmpty      = errors.New("building directory is empty")
)

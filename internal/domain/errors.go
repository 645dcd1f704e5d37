package domain

import "errors"

var (
	// ErrAPIKeyMissing is returned when matching is requested before an API key is configured
	ErrAPIKeyMissing = errors.New("OpenAI API key не встановлено")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnsupportedSpreadsheet is returned when an uploaded file is not a known spreadsheet format
	ErrUnsupportedSpreadsheet = errors.New("unsupported spreadsheet format")

	// ErrInvalidSpreadsheet is returned when an uploaded spreadsheet cannot be read
	ErrInvalidSpreadsheet = errors.New("spreadsheet could not be read")

	// ErrStoreWrite is returned when a store document cannot be persisted
	ErrStoreWrite = errors.New("store write failed")
)

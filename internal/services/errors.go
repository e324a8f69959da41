package services

import "errors"

// Sentinel errors for pipeline stages.
var (
	ErrExtraction    = errors.New("failed to extract text from PDF")
	ErrNoTextContent = errors.New("no text content found in PDF")
	ErrGeneration    = errors.New("failed to generate text")
	ErrEmptyResponse = errors.New("no text content in response")
	ErrAssembly      = errors.New("failed to assemble document")

	// Upload validation errors.
	ErrInvalidExtension = errors.New("invalid file extension")
	ErrFileTooLarge     = errors.New("file too large")
	ErrEmptyFile        = errors.New("uploaded file is empty")

	// Photo errors.
	ErrInvalidBorderWidth = errors.New("invalid border width")
	ErrImageDecode        = errors.New("failed to decode image")
	ErrImageTooLarge      = errors.New("image dimensions too large")
)

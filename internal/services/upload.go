package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// UploadService reads uploaded files into memory. Nothing is written to
// disk: uploads live only for the request that carried them.
type UploadService interface {
	ReadPDF(file *multipart.FileHeader) ([]byte, error)
	ReadImage(file *multipart.FileHeader) ([]byte, error)
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
	}
}

// ReadPDF implements UploadService.
func (s *uploadService) ReadPDF(file *multipart.FileHeader) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return s.read(file)
}

// ReadImage implements UploadService. The format is checked when the bytes
// are decoded, not by extension.
func (s *uploadService) ReadImage(file *multipart.FileHeader) ([]byte, error) {
	return s.read(file)
}

func (s *uploadService) read(file *multipart.FileHeader) ([]byte, error) {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	limit := s.maxFileSize
	if limit <= 0 {
		limit = file.Size
	}

	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: max size %d bytes", ErrFileTooLarge, limit)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}

	return data, nil
}

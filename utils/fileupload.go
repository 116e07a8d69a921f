package utils

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/stridefoot/footwear-erp-api/errs"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
	// StorageKeyPrefix is the folder every document blob lives under
	StorageKeyPrefix = "documents"
)

// AllowedDocumentExtensions lists the file types accepted for order documents
var AllowedDocumentExtensions = []string{
	".pdf", ".png", ".jpg", ".jpeg", ".tif", ".tiff",
	".doc", ".docx", ".xls", ".xlsx", ".csv", ".txt",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// Unwrap classifies upload problems as validation failures
func (e *FileUploadError) Unwrap() error {
	return errs.ErrValidation
}

// ValidateDocumentFile validates the name and size of an uploaded document
func ValidateDocumentFile(filename string, size int64) error {
	if size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}
	if size < 0 {
		return &FileUploadError{Code: "INVALID_FILE_SIZE", Message: "File size must not be negative"}
	}

	name := BaseName(filename)
	if name == "" {
		return &FileUploadError{Code: "MISSING_FILE_NAME", Message: "File name is required"}
	}

	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedDocumentExtensions {
		if ext == allowed {
			return nil
		}
	}
	return &FileUploadError{
		Code:    "INVALID_FILE_FORMAT",
		Message: fmt.Sprintf("Only %s files are allowed", strings.Join(AllowedDocumentExtensions, ", ")),
	}
}

// ReadUploadedFile validates a multipart file and reads its content
func ReadUploadedFile(fileHeader *multipart.FileHeader) ([]byte, error) {
	if err := ValidateDocumentFile(fileHeader.Filename, fileHeader.Size); err != nil {
		return nil, err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Read one byte past the limit so an understated header size is still caught
	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if err := ValidateDocumentFile(fileHeader.Filename, int64(len(data))); err != nil {
		return nil, err
	}
	return data, nil
}

// BaseName strips any directory part from a client supplied file name,
// including Windows style separators
func BaseName(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// NewStorageKey builds a collision resistant storage key for an upload
// Format: documents/{uuid}_{filename}
func NewStorageKey(filename string) string {
	name := strings.ReplaceAll(BaseName(filename), " ", "_")
	return fmt.Sprintf("%s/%s_%s", StorageKeyPrefix, uuid.NewString(), name)
}

// DetectContentType prefers the declared type, then the extension, then sniffing
func DetectContentType(filename, declared string, data []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}

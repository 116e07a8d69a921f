package services

import (
	"context"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/utils"
)

// Upload is a file received from a client
type Upload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// storedBlob describes an upload that has been written to blob storage but
// may not have a Document row yet
type storedBlob struct {
	key          string
	locator      string
	contentType  string
	originalName string
	size         int64
}

// putUpload validates an upload and writes it under a fresh storage key
func putUpload(ctx context.Context, blobs BlobStorage, upload *Upload) (*storedBlob, error) {
	if upload == nil {
		return nil, errs.NewValidationError("file", "file is required")
	}
	if err := utils.ValidateDocumentFile(upload.FileName, int64(len(upload.Data))); err != nil {
		return nil, err
	}

	key := utils.NewStorageKey(upload.FileName)
	contentType := utils.DetectContentType(upload.FileName, upload.ContentType, upload.Data)

	locator, err := blobs.Put(ctx, key, upload.Data, contentType)
	if err != nil {
		return nil, storageFailure("store file", err)
	}

	return &storedBlob{
		key:          key,
		locator:      locator,
		contentType:  contentType,
		originalName: utils.BaseName(upload.FileName),
		size:         int64(len(upload.Data)),
	}, nil
}

func (b *storedBlob) document(docType models.DocumentType, orderID *string, actor string) *models.Document {
	return &models.Document{
		OrderID:      orderID,
		FileName:     b.key,
		OriginalName: b.originalName,
		FileSize:     b.size,
		MimeType:     b.contentType,
		DocumentType: docType,
		FilePath:     b.locator,
		UploadedBy:   actor,
	}
}

// discardBlob removes a blob whose Document was never committed
func discardBlob(ctx context.Context, blobs BlobStorage, log *logger.Logger, b *storedBlob) {
	if b == nil {
		return
	}
	if err := blobs.Delete(context.WithoutCancel(ctx), b.key); err != nil {
		log.Warn("Failed to discard uploaded file", "key", b.key, "error", err)
	}
}

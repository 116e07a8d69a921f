package services

import (
	"context"
	"io"

	"github.com/stridefoot/footwear-erp-api/errs"
)

// BlobStorage persists uploaded document bytes. Keys are produced by
// utils.NewStorageKey; the returned locator is recorded on the Document.
type BlobStorage interface {
	// Put stores data under key and returns the locator of the stored object
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Open returns a reader for the object; a missing object is a NotFoundError
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object; deleting a missing object is not an error
	Delete(ctx context.Context, key string) error
}

// storageFailure wraps backend errors that are not already classified
func storageFailure(op string, err error) error {
	if err == nil || errs.IsClassified(err) {
		return err
	}
	return errs.NewStorageError(op, err)
}

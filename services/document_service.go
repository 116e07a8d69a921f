package services

import (
	"context"
	"io"
	"time"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/repository"
)

// DocumentService stores uploaded documents and binds them to orders
type DocumentService struct {
	store *repository.Store
	blobs BlobStorage
	log   *logger.Logger
	now   func() time.Time
}

func NewDocumentService(store *repository.Store, blobs BlobStorage, log *logger.Logger) *DocumentService {
	return &DocumentService{
		store: store,
		blobs: blobs,
		log:   log.With("service", "DocumentService"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// StageDocument stores an upload and records it as an unlinked Document.
// The caller is expected to link it; unlinked documents are purged after a TTL.
func (s *DocumentService) StageDocument(ctx context.Context, upload *Upload, docType models.DocumentType, actor string) (*models.Document, error) {
	if !docType.Valid() {
		return nil, errs.NewValidationError("document_type", "unknown document type "+string(docType))
	}

	blob, err := putUpload(ctx, s.blobs, upload)
	if err != nil {
		return nil, err
	}

	doc, err := stageDocument(ctx, s.store, blob, docType, actor, ExtractedFields{})
	if err != nil {
		discardBlob(ctx, s.blobs, s.log, blob)
		return nil, err
	}
	s.log.Info("Document staged", "document_id", doc.ID, "document_type", docType)
	return doc, nil
}

// stageDocument records a stored blob as an unlinked Document. store may be
// bound to a transaction.
func stageDocument(ctx context.Context, store *repository.Store, blob *storedBlob, docType models.DocumentType, actor string, extracted ExtractedFields) (*models.Document, error) {
	doc := blob.document(docType, nil, actor)
	if !extracted.IsEmpty() {
		doc.ExtractedFields = extracted.AsMap()
	}
	if err := store.Documents().Insert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LinkDocument binds a document to an order. Linking to the order it already
// belongs to changes nothing; linking to another order moves it.
func (s *DocumentService) LinkDocument(ctx context.Context, documentID, orderID string) (*models.Document, error) {
	var doc *models.Document
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		doc, err = linkDocument(ctx, tx, documentID, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func linkDocument(ctx context.Context, tx *repository.Store, documentID, orderID string) (*models.Document, error) {
	doc, err := tx.Documents().Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Orders().Get(ctx, orderID); err != nil {
		return nil, err
	}

	if doc.OrderID != nil && *doc.OrderID == orderID {
		return doc, nil
	}
	if err := tx.Documents().Update(ctx, documentID, map[string]interface{}{"order_id": orderID}); err != nil {
		return nil, err
	}
	doc.OrderID = &orderID
	return doc, nil
}

// UploadDocument stores a file for an existing order in one step
func (s *DocumentService) UploadDocument(ctx context.Context, orderID string, docType models.DocumentType, upload *Upload, actor string) (*models.Document, error) {
	if !docType.Valid() {
		return nil, errs.NewValidationError("document_type", "unknown document type "+string(docType))
	}
	if _, err := s.store.Orders().Get(ctx, orderID); err != nil {
		return nil, err
	}

	blob, err := putUpload(ctx, s.blobs, upload)
	if err != nil {
		return nil, err
	}

	doc := blob.document(docType, &orderID, actor)
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Orders().Get(ctx, orderID); err != nil {
			return err
		}
		return tx.Documents().Insert(ctx, doc)
	})
	if err != nil {
		discardBlob(ctx, s.blobs, s.log, blob)
		return nil, err
	}

	s.log.Info("Document uploaded", "document_id", doc.ID, "order_id", orderID, "document_type", docType)
	return doc, nil
}

// ListDocuments returns linked documents, newest upload first
func (s *DocumentService) ListDocuments(ctx context.Context) ([]models.Document, error) {
	linked := true
	return s.store.Documents().Query(ctx, repository.DocumentQuery{Linked: &linked})
}

// ListOrderDocuments returns the documents of one order
func (s *DocumentService) ListOrderDocuments(ctx context.Context, orderID string) ([]models.Document, error) {
	if _, err := s.store.Orders().Get(ctx, orderID); err != nil {
		return nil, err
	}
	return s.store.Documents().Query(ctx, repository.DocumentQuery{OrderID: orderID})
}

// OpenDocument returns a linked document with a reader over its content.
// The caller must close the reader.
func (s *DocumentService) OpenDocument(ctx context.Context, id string) (*models.Document, io.ReadCloser, error) {
	doc, err := s.store.Documents().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !doc.IsLinked() {
		return nil, nil, errs.NewNotFoundError("document", id)
	}

	r, err := s.blobs.Open(ctx, doc.FileName)
	if err != nil {
		return nil, nil, storageFailure("open file", err)
	}
	return doc, r, nil
}

// PurgeUnlinked deletes documents that stayed unlinked for longer than
// olderThan, along with their stored files. It returns how many were purged.
func (s *DocumentService) PurgeUnlinked(ctx context.Context, olderThan time.Duration) (int, error) {
	unlinked := false
	stale, err := s.store.Documents().Query(ctx, repository.DocumentQuery{
		Linked:         &unlinked,
		UploadedBefore: s.now().Add(-olderThan),
	})
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, doc := range stale {
		deleted, err := s.store.Documents().DeleteIfUnlinked(ctx, doc.ID)
		if err != nil {
			return purged, err
		}
		if !deleted {
			continue
		}
		purged++

		if err := s.blobs.Delete(ctx, doc.FileName); err != nil {
			s.log.Warn("Failed to delete file of purged document", "document_id", doc.ID, "key", doc.FileName, "error", err)
		}
	}

	if purged > 0 {
		s.log.Info("Purged unlinked documents", "count", purged)
	}
	return purged, nil
}

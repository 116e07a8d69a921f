package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/models"
)

// DocumentQuery filters document listings. Linked selects linked (true) or
// unlinked (false) documents; nil returns both.
type DocumentQuery struct {
	OrderID        string
	Linked         *bool
	UploadedBefore time.Time
	Limit          int
}

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Insert(ctx context.Context, doc *models.Document) error {
	err := r.db.WithContext(ctx).Create(doc).Error
	return errs.FromDB(err, "insert document", "document", "id", doc.ID)
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, errs.FromDB(err, "get document", "document", "id", id)
	}
	return &doc, nil
}

// Query returns documents newest upload first
func (r *DocumentRepository) Query(ctx context.Context, q DocumentQuery) ([]models.Document, error) {
	db := r.db.WithContext(ctx).Model(&models.Document{})
	if q.OrderID != "" {
		db = db.Where("order_id = ?", q.OrderID)
	}
	if q.Linked != nil {
		if *q.Linked {
			db = db.Where("order_id IS NOT NULL")
		} else {
			db = db.Where("order_id IS NULL")
		}
	}
	if !q.UploadedBefore.IsZero() {
		db = db.Where("uploaded_at < ?", q.UploadedBefore)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}

	var docs []models.Document
	if err := db.Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, errs.FromDB(err, "query documents", "document", "", "")
	}
	return docs, nil
}

func (r *DocumentRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Document{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return errs.FromDB(result.Error, "update document", "document", "id", id)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("document", id)
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return errs.FromDB(result.Error, "delete document", "document", "id", id)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFoundError("document", id)
	}
	return nil
}

// DeleteIfUnlinked removes the document only while it is still unlinked and
// reports whether a row was deleted
func (r *DocumentRepository) DeleteIfUnlinked(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Where("order_id IS NULL").Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return false, errs.FromDB(result.Error, "delete document", "document", "id", id)
	}
	return result.RowsAffected > 0, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Document represents an uploaded artifact. OrderID is nil while the
// document is unlinked, which only happens between staging and linking
// during order intake.
type Document struct {
	ID              string            `gorm:"primaryKey;size:36" json:"id"`
	OrderID         *string           `gorm:"index;size:36" json:"order_id"`
	FileName        string            `gorm:"not null" json:"file_name"` // storage key
	OriginalName    string            `gorm:"not null" json:"original_name"`
	FileSize        int64             `gorm:"not null;default:0" json:"file_size"`
	MimeType        string            `json:"mime_type"`
	DocumentType    DocumentType      `gorm:"not null;size:32" json:"document_type"`
	FilePath        string            `gorm:"not null" json:"file_path"` // storage locator
	ExtractedFields datatypes.JSONMap `json:"extracted_fields,omitempty"`
	UploadedBy      string            `json:"uploaded_by"`
	UploadedAt      time.Time         `gorm:"index" json:"uploaded_at"`
}

// TableName specifies the table name for the Document model
func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	return nil
}

// IsLinked reports whether the document belongs to an order
func (d *Document) IsLinked() bool {
	return d.OrderID != nil && *d.OrderID != ""
}

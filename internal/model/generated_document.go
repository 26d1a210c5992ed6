package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mime types of generated artifacts
const (
	MimeTypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeTypeHTML = "text/html"
)

// GeneratedDocument is one generation result. Rows are immutable after insert;
// regenerating a document creates a new row.
type GeneratedDocument struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID string `gorm:"type:uuid;index" json:"template_id"`
	CaseID     string `gorm:"type:uuid;index;not null" json:"case_id"`

	DocumentType string `gorm:"type:varchar(50);not null" json:"document_type"`

	// Content holds inline text for html artifacts and base64 for binary ones
	Content       string `gorm:"type:text" json:"content"`
	MimeType      string `gorm:"type:varchar(150)" json:"mime_type"`
	FileExtension string `gorm:"type:varchar(10)" json:"file_extension"`

	IsSigned bool       `gorm:"default:false" json:"is_signed"`
	SignedAt *time.Time `json:"signed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (GeneratedDocument) TableName() string {
	return "generated_documents"
}

func (d *GeneratedDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

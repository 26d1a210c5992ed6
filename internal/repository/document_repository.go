package repository

import (
	"github.com/opsio/esignpro-backend/internal/model"
	"gorm.io/gorm"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a generated document. Rows are never updated afterwards;
// regeneration inserts a new row.
func (r *DocumentRepository) Create(doc *model.GeneratedDocument) error {
	return r.db.Create(doc).Error
}

// GetByID fetches a generated document; returns nil, nil when absent
func (r *DocumentRepository) GetByID(id string) (*model.GeneratedDocument, error) {
	var doc model.GeneratedDocument
	err := r.db.Where("id = ?", id).First(&doc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// ListByCase returns every artifact generated for a case, newest first
func (r *DocumentRepository) ListByCase(caseID string) ([]model.GeneratedDocument, error) {
	var docs []model.GeneratedDocument
	err := r.db.Where("case_id = ?", caseID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

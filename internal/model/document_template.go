package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Template categories
const (
	TemplateCategoryResiliation    = "resiliation"
	TemplateCategoryOpsioInfoSheet = "opsio-info-sheet"
)

// Template formats
const (
	TemplateFormatHTML = "html"
	TemplateFormatDocx = "docx"
)

// DocumentTemplate is a published document template. Rows are immutable once
// published; a new version replaces the active row for its category.
type DocumentTemplate struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(150);not null" json:"name"`
	Category string `gorm:"type:varchar(50);index;not null" json:"category"`
	Format   string `gorm:"type:varchar(10);default:html" json:"format"`

	// Content is the raw template text for html templates. Docx templates are
	// assembled from the variable set block by block and keep Content empty.
	Content string `gorm:"type:text" json:"content"`

	// Placeholders is the declared token list as a JSON string array
	Placeholders datatypes.JSON `gorm:"type:json" json:"placeholders"`

	Version  string `gorm:"type:varchar(20);default:1.0.0" json:"version"`
	IsActive bool   `gorm:"default:true;index" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DocumentTemplate) TableName() string {
	return "document_templates"
}

func (t *DocumentTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// PlaceholderNames decodes the declared placeholder list
func (t *DocumentTemplate) PlaceholderNames() []string {
	if len(t.Placeholders) == 0 {
		return nil
	}
	var names []string
	if err := json.Unmarshal(t.Placeholders, &names); err != nil {
		return nil
	}
	return names
}

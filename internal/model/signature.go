package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CaseSignature is a one-off signature captured while signing a single case
type CaseSignature struct {
	ID     string         `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID string         `gorm:"type:uuid;index;not null" json:"case_id"`
	Case   *InsuranceCase `gorm:"foreignKey:CaseID" json:"case,omitempty"`

	// SignatureData is the PNG payload, base64 encoded
	SignatureData string `gorm:"type:text" json:"signature_data"`

	SignedAt  *time.Time `json:"signed_at,omitempty"`
	IPAddress string     `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string     `gorm:"type:varchar(500)" json:"user_agent"`
	Hash      string     `gorm:"type:varchar(64)" json:"hash"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CaseSignature) TableName() string {
	return "case_signatures"
}

func (s *CaseSignature) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

// ClientSignature is a reusable signature attached to the client identity.
// Invariant: a client has at most one IsDefault=true among active rows.
type ClientSignature struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID string `gorm:"type:uuid;index;not null" json:"client_id"`

	SignatureData string `gorm:"type:text" json:"signature_data"`

	// IsActive carries no column default on purpose: callers always set it
	// explicitly, and a default would silently flip zero-value inserts.
	IsActive  bool       `gorm:"index" json:"is_active"`
	IsDefault bool       `json:"is_default"`
	SignedAt  *time.Time `json:"signed_at,omitempty"`
	IPAddress string     `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent string     `gorm:"type:varchar(500)" json:"user_agent"`
	Hash      string     `gorm:"type:varchar(64)" json:"hash"`

	// Metadata records provenance when promoted from a case signature
	// (source case number, source signature id, promotion timestamp)
	Metadata datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ClientSignature) TableName() string {
	return "client_signatures"
}

func (s *ClientSignature) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

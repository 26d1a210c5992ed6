package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InsurancePolicy is a policy attached to a case. A case always carries its
// primary policy inline; extra policies terminated in the same dossier land here.
type InsurancePolicy struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	CaseID       string          `gorm:"type:uuid;index;not null" json:"case_id"`
	Company      string          `gorm:"type:varchar(150);not null" json:"company"`
	PolicyNumber string          `gorm:"type:varchar(100)" json:"policy_number"`
	PolicyType   string          `gorm:"type:varchar(100)" json:"policy_type"`
	// AnnualPremium in CHF
	AnnualPremium   decimal.Decimal `gorm:"type:decimal(12,2)" json:"annual_premium"`
	TerminationDate *time.Time      `json:"termination_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (InsurancePolicy) TableName() string {
	return "insurance_policies"
}

func (p *InsurancePolicy) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

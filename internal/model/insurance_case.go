package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Case status lifecycle
const (
	CaseStatusDraft             = "draft"
	CaseStatusEmailSent         = "email_sent"
	CaseStatusDocumentsUploaded = "documents_uploaded"
	CaseStatusSigned            = "signed"
	CaseStatusCompleted         = "completed"
)

// MaxInsuredPersons is the hard limit of additional insured persons per document
const MaxInsuredPersons = 4

// InsuredPerson is an additional person covered by the policy being terminated.
// Adults get their own signature block on the termination letter.
type InsuredPerson struct {
	Name         string `json:"name"`
	BirthDate    string `json:"birth_date"`
	PolicyNumber string `json:"policy_number"`
	IsAdult      bool   `json:"is_adult"`
}

// InsuranceCase is one termination dossier for a client
type InsuranceCase struct {
	ID         string   `gorm:"type:uuid;primaryKey" json:"id"`
	CaseNumber string   `gorm:"type:varchar(50);uniqueIndex;not null" json:"case_number"`
	ClientID   string   `gorm:"type:uuid;index;not null" json:"client_id"`
	Client     *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AdvisorID  string   `gorm:"type:uuid;index" json:"advisor_id"`
	Advisor    *Advisor `gorm:"foreignKey:AdvisorID" json:"advisor,omitempty"`

	Status string `gorm:"type:varchar(30);default:draft;index" json:"status"`

	// Primary policy being terminated
	InsuranceCompany string     `gorm:"type:varchar(150)" json:"insurance_company"`
	PolicyNumber     string     `gorm:"type:varchar(100)" json:"policy_number"`
	PolicyType       string     `gorm:"type:varchar(100)" json:"policy_type"`
	TerminationDate  *time.Time `json:"termination_date,omitempty"`
	Reason           string     `gorm:"type:text" json:"reason"`

	// PaymentMethod is "commission" or "fees"; drives the checkbox pair on
	// the Opsio info sheet.
	PaymentMethod string `gorm:"type:varchar(20)" json:"payment_method"`

	// InsuredPersons holds up to MaxInsuredPersons entries as a JSON array
	InsuredPersons datatypes.JSON `gorm:"type:json" json:"insured_persons,omitempty"`

	// FormData is the raw intake payload as submitted, kept for audit
	FormData datatypes.JSON `gorm:"type:json" json:"form_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (InsuranceCase) TableName() string {
	return "insurance_cases"
}

func (c *InsuranceCase) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// Persons decodes the insured-persons JSON array, capped at MaxInsuredPersons
func (c *InsuranceCase) Persons() []InsuredPerson {
	if len(c.InsuredPersons) == 0 {
		return nil
	}
	var persons []InsuredPerson
	if err := json.Unmarshal(c.InsuredPersons, &persons); err != nil {
		return nil
	}
	if len(persons) > MaxInsuredPersons {
		persons = persons[:MaxInsuredPersons]
	}
	return persons
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Advisor is the Opsio agent handling a case; printed on every generated document
type Advisor struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	Phone      string    `gorm:"type:varchar(50)" json:"phone"`
	AgencyCity string    `gorm:"type:varchar(100)" json:"agency_city"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Advisor) TableName() string {
	return "advisors"
}

func (a *Advisor) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// FullName returns "FirstName LastName"
func (a *Advisor) FullName() string {
	if a.FirstName == "" {
		return a.LastName
	}
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is the insured customer a termination case belongs to
type Client struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);index" json:"email"`
	Phone     string `gorm:"type:varchar(50)" json:"phone"`

	// Swiss postal address
	Street       string `gorm:"type:varchar(255)" json:"street"`
	StreetNumber string `gorm:"type:varchar(20)" json:"street_number"`
	NPA          string `gorm:"type:varchar(10)" json:"npa"` // code postal
	City         string `gorm:"type:varchar(100)" json:"city"`

	BirthDate *time.Time `json:"birth_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// BeforeCreate assigns a uuid primary key when none was supplied
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// FullName returns "FirstName LastName" with empty parts trimmed
func (c *Client) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

package repository

import (
	"github.com/opsio/esignpro-backend/internal/model"
	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// GetByID fetches a client; returns nil, nil when the row does not exist
func (r *ClientRepository) GetByID(id string) (*model.Client, error) {
	var client model.Client
	err := r.db.Where("id = ?", id).First(&client).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &client, nil
}

package repository

import (
	"github.com/opsio/esignpro-backend/internal/model"
	"gorm.io/gorm"
)

type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// GetByID fetches a case with its client and advisor preloaded; returns
// nil, nil when the row does not exist
func (r *CaseRepository) GetByID(id string) (*model.InsuranceCase, error) {
	var c model.InsuranceCase
	err := r.db.Preload("Client").Preload("Advisor").Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// UpdateStatus advances a case through its lifecycle
func (r *CaseRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&model.InsuranceCase{}).Where("id = ?", id).
		Update("status", status).Error
}

// ListPolicies returns the extra policies attached to a case
func (r *CaseRepository) ListPolicies(caseID string) ([]model.InsurancePolicy, error) {
	var policies []model.InsurancePolicy
	err := r.db.Where("case_id = ?", caseID).Order("created_at ASC").Find(&policies).Error
	return policies, err
}

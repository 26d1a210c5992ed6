package repository

import (
	"fmt"

	"github.com/opsio/esignpro-backend/internal/model"
	"gorm.io/gorm"
)

// Capabilities describes optional schema features, resolved once at startup
// and passed in explicitly instead of being inferred from query errors.
type Capabilities struct {
	// CaseSignatureHasClientID is true when case_signatures carries a direct
	// client_id column (legacy imports). When false the owning client is
	// resolved by joining insurance_cases.
	CaseSignatureHasClientID bool
}

// DetectCapabilities probes the schema once
func DetectCapabilities(db *gorm.DB) Capabilities {
	return Capabilities{
		CaseSignatureHasClientID: db.Migrator().HasColumn(&model.CaseSignature{}, "client_id"),
	}
}

type SignatureRepository struct {
	db   *gorm.DB
	caps Capabilities
}

func NewSignatureRepository(db *gorm.DB, caps Capabilities) *SignatureRepository {
	return &SignatureRepository{db: db, caps: caps}
}

// CreateCaseSignature stores a signature captured for one case
func (r *SignatureRepository) CreateCaseSignature(sig *model.CaseSignature) error {
	return r.db.Create(sig).Error
}

// GetLatestByCase returns the most recent non-empty signature for a case,
// or nil, nil when the case has none
func (r *SignatureRepository) GetLatestByCase(caseID string) (*model.CaseSignature, error) {
	var sig model.CaseSignature
	// signed_at may be null on legacy rows; fall back to created_at ordering
	err := r.db.Where("case_id = ? AND signature_data <> ''", caseID).
		Order("signed_at IS NULL, signed_at DESC, created_at DESC").
		First(&sig).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &sig, nil
}

// OwnedCaseSignature is a case signature with its owning client resolved
type OwnedCaseSignature struct {
	model.CaseSignature
	ClientID   string `gorm:"column:owner_client_id"`
	CaseNumber string `gorm:"column:owner_case_number"`
}

// ListOwnedCaseSignatures enumerates every case-scoped signature carrying
// image data, with the owning client attached. The query shape depends on
// the schema capability resolved at startup.
func (r *SignatureRepository) ListOwnedCaseSignatures() ([]OwnedCaseSignature, error) {
	var rows []OwnedCaseSignature

	if r.caps.CaseSignatureHasClientID {
		err := r.db.Model(&model.CaseSignature{}).
			Select("case_signatures.*, case_signatures.client_id AS owner_client_id, insurance_cases.case_number AS owner_case_number").
			Joins("JOIN insurance_cases ON insurance_cases.id = case_signatures.case_id").
			Where("case_signatures.signature_data <> ''").
			Scan(&rows).Error
		return rows, err
	}

	err := r.db.Model(&model.CaseSignature{}).
		Select("case_signatures.*, insurance_cases.client_id AS owner_client_id, insurance_cases.case_number AS owner_case_number").
		Joins("JOIN insurance_cases ON insurance_cases.id = case_signatures.case_id").
		Where("case_signatures.signature_data <> ''").
		Scan(&rows).Error
	return rows, err
}

// HasActiveClientSignature reports whether a client already owns at least
// one active client-scoped signature
func (r *SignatureRepository) HasActiveClientSignature(clientID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ClientSignature{}).
		Where("client_id = ? AND is_active = ?", clientID, true).
		Count(&count).Error
	return count > 0, err
}

// CreateClientSignature stores a reusable client-scoped signature
func (r *SignatureRepository) CreateClientSignature(sig *model.ClientSignature) error {
	return r.db.Create(sig).Error
}

// ListClientSignatures returns a client's signatures, newest first
func (r *SignatureRepository) ListClientSignatures(clientID string) ([]model.ClientSignature, error) {
	var sigs []model.ClientSignature
	err := r.db.Where("client_id = ?", clientID).
		Order("created_at DESC").Find(&sigs).Error
	return sigs, err
}

// ReactivateAll flips every inactive signature of a client back to active.
// Reactivated rows lose their default flag: a superseded default coming back
// must not sit beside the current one, only SetDefault grants the flag.
func (r *SignatureRepository) ReactivateAll(clientID string) (int64, error) {
	res := r.db.Model(&model.ClientSignature{}).
		Where("client_id = ? AND is_active = ?", clientID, false).
		Updates(map[string]interface{}{"is_active": true, "is_default": false})
	return res.RowsAffected, res.Error
}

// SetDefault designates exactly one signature as the client's default. Any
// prior default is cleared in the same transaction, keeping the "at most one
// default among active signatures" invariant.
func (r *SignatureRepository) SetDefault(clientID, signatureID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var sig model.ClientSignature
		err := tx.Where("id = ? AND client_id = ?", signatureID, clientID).First(&sig).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("signature %s not found for client %s", signatureID, clientID)
			}
			return err
		}
		if !sig.IsActive {
			return fmt.Errorf("signature %s is inactive; reactivate it before making it the default", signatureID)
		}

		if err := tx.Model(&model.ClientSignature{}).
			Where("client_id = ? AND is_default = ?", clientID, true).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.ClientSignature{}).
			Where("id = ?", signatureID).
			Update("is_default", true).Error
	})
}

package app

import (
	"github.com/opsio/esignpro-backend/internal/repository"
	"github.com/opsio/esignpro-backend/pkg/config"
	"github.com/opsio/esignpro-backend/pkg/database"
	"github.com/opsio/esignpro-backend/pkg/logger"
)

// Repositories holds all repository instances
type Repositories struct {
	Client    *repository.ClientRepository
	Case      *repository.CaseRepository
	Template  *repository.TemplateRepository
	Document  *repository.DocumentRepository
	Signature *repository.SignatureRepository
}

// InitializeRepositories creates all repositories on the shared DB handle
func InitializeRepositories(cfg *config.Config) *Repositories {
	caps := repository.DetectCapabilities(database.DB)
	if !caps.CaseSignatureHasClientID {
		logger.Warnf("case_signatures has no client_id column, reconciliation joins through insurance_cases")
	}

	return &Repositories{
		Client:    repository.NewClientRepository(database.DB),
		Case:      repository.NewCaseRepository(database.DB),
		Template:  repository.NewTemplateRepository(database.DB, cfg.Docgen.TemplateCacheTTL),
		Document:  repository.NewDocumentRepository(database.DB),
		Signature: repository.NewSignatureRepository(database.DB, caps),
	}
}

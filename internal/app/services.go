package app

import (
	documentService "github.com/opsio/esignpro-backend/internal/service/document"
	signatureService "github.com/opsio/esignpro-backend/internal/service/signature"
	"github.com/opsio/esignpro-backend/pkg/config"
)

// Services holds all service instances
type Services struct {
	Generation *documentService.GenerationService
	Reconcile  *signatureService.ReconcileService
}

// InitializeServices creates the domain services
func InitializeServices(repos *Repositories, cfg *config.Config) *Services {
	generationService := documentService.NewGenerationService(
		repos.Template,
		repos.Case,
		repos.Document,
		repos.Signature,
		&cfg.Docgen,
	)

	reconcileService := signatureService.NewReconcileService(repos.Signature)

	return &Services{
		Generation: generationService,
		Reconcile:  reconcileService,
	}
}

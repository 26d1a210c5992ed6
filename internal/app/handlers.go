package app

import (
	"github.com/opsio/esignpro-backend/internal/api/handler"
)

// Handlers holds all handler instances
type Handlers struct {
	Document       *handler.DocumentHandler
	Template       *handler.TemplateHandler
	Signature      *handler.SignatureHandler
	SignatureAdmin *handler.SignatureAdminHandler
}

// InitializeHandlers creates the HTTP handlers
func InitializeHandlers(repos *Repositories, services *Services) *Handlers {
	documentHandler := handler.NewDocumentHandler(services.Generation, repos.Document)
	templateHandler := handler.NewTemplateHandler(repos.Template)
	signatureHandler := handler.NewSignatureHandler(repos.Signature, repos.Case, repos.Client)
	signatureAdminHandler := handler.NewSignatureAdminHandler(services.Reconcile)

	return &Handlers{
		Document:       documentHandler,
		Template:       templateHandler,
		Signature:      signatureHandler,
		SignatureAdmin: signatureAdminHandler,
	}
}

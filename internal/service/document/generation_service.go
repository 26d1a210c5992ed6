package document

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opsio/esignpro-backend/internal/docgen"
	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/internal/repository"
	"github.com/opsio/esignpro-backend/pkg/config"
	"github.com/opsio/esignpro-backend/pkg/logger"
	"github.com/opsio/esignpro-backend/pkg/metrics"
	"github.com/opsio/esignpro-backend/pkg/retry"
)

// Lookup failures surfaced as 404 by the API layer
var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrCaseNotFound     = errors.New("case not found")
)

// GenerationService runs the full pipeline: load the record graph, resolve
// variables, assemble the artifact, persist the result
type GenerationService struct {
	templates  *repository.TemplateRepository
	cases      *repository.CaseRepository
	documents  *repository.DocumentRepository
	signatures *repository.SignatureRepository
	assembler  *docgen.Assembler
	defaults   docgen.AdvisorDefaults
	retryCfg   retry.Config
}

func NewGenerationService(
	templates *repository.TemplateRepository,
	cases *repository.CaseRepository,
	documents *repository.DocumentRepository,
	signatures *repository.SignatureRepository,
	cfg *config.DocgenConfig,
) *GenerationService {
	return &GenerationService{
		templates:  templates,
		cases:      cases,
		documents:  documents,
		signatures: signatures,
		assembler:  docgen.NewAssembler(cfg.SignatureWidth, cfg.SignatureHeight),
		defaults: docgen.AdvisorDefaults{
			Name:  cfg.AdvisorName,
			Email: cfg.AdvisorEmail,
			Phone: cfg.AdvisorPhone,
			City:  cfg.AgencyCity,
		},
		retryCfg: retry.DefaultConfig,
	}
}

// GenerateRequest is one generation call
type GenerateRequest struct {
	DocumentType string
	CaseID       string
	IPAddress    string
	UserAgent    string

	// Data overrides resolved variables key by key (caller-supplied fields
	// win over stored records)
	Data map[string]string
}

// GenerateResult carries the artifact plus its persistence outcome. Saved is
// false when generation succeeded but the audit insert failed; the caller
// still receives the document.
type GenerateResult struct {
	Document *model.GeneratedDocument
	Artifact *docgen.Artifact
	Saved    bool
}

// Generate runs one generation call end to end
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	start := time.Now()

	tpl, err := s.loadTemplate(ctx, req.DocumentType)
	if err != nil {
		return nil, err
	}

	input, err := s.loadInput(ctx, req)
	if err != nil {
		return nil, err
	}

	vars := docgen.Resolve(input)
	for key, value := range req.Data {
		vars[key] = value
	}

	artifact, err := s.assembler.Assemble(tpl, vars, input)
	if err != nil {
		metrics.DocumentsGenerated.WithLabelValues(req.DocumentType, "failed").Inc()
		return nil, err
	}
	if artifact.SignatureFellBack {
		metrics.SignatureEmbedFallbacks.Inc()
		logger.Warnf("Signature image for case %s could not be embedded; placeholder line rendered", req.CaseID)
	}
	metrics.DocumentGenerationDuration.WithLabelValues(req.DocumentType).Observe(time.Since(start).Seconds())

	doc := &model.GeneratedDocument{
		ID:            uuid.New().String(),
		TemplateID:    tpl.ID,
		CaseID:        req.CaseID,
		DocumentType:  req.DocumentType,
		Content:       artifact.Content,
		MimeType:      artifact.MimeType,
		FileExtension: artifact.FileExtension,
		IsSigned:      artifact.SignatureEmbedded,
	}
	if artifact.SignatureEmbedded && input.Signature != nil {
		signedAt := input.Signature.SignedAt
		doc.SignedAt = &signedAt
	}

	// Persist-after-generate policy: a failed audit insert must not discard
	// the artifact the client is waiting for.
	saveErr := retry.Do(ctx, s.retryCfg, func() error {
		return s.documents.Create(doc)
	})
	if saveErr != nil {
		metrics.DocumentsGenerated.WithLabelValues(req.DocumentType, "unsaved").Inc()
		logger.Errorf("Generated document for case %s could not be saved: %v", req.CaseID, saveErr)
		return &GenerateResult{Document: doc, Artifact: artifact, Saved: false}, nil
	}

	metrics.DocumentsGenerated.WithLabelValues(req.DocumentType, "saved").Inc()
	logger.Infof("Generated %s document %s for case %s (signed=%v)",
		req.DocumentType, doc.ID, req.CaseID, doc.IsSigned)
	return &GenerateResult{Document: doc, Artifact: artifact, Saved: true}, nil
}

func (s *GenerationService) loadTemplate(ctx context.Context, documentType string) (*model.DocumentTemplate, error) {
	var tpl *model.DocumentTemplate
	err := retry.Do(ctx, s.retryCfg, func() error {
		var lookupErr error
		tpl, lookupErr = s.templates.GetActiveByCategory(ctx, documentType)
		return lookupErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", documentType, err)
	}
	if tpl == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, documentType)
	}
	return tpl, nil
}

// loadInput assembles the full record graph for the resolver
func (s *GenerationService) loadInput(ctx context.Context, req GenerateRequest) (docgen.GenerationInput, error) {
	var c *model.InsuranceCase
	err := retry.Do(ctx, s.retryCfg, func() error {
		var lookupErr error
		c, lookupErr = s.cases.GetByID(req.CaseID)
		return lookupErr
	})
	if err != nil {
		return docgen.GenerationInput{}, fmt.Errorf("failed to load case %s: %w", req.CaseID, err)
	}
	if c == nil {
		return docgen.GenerationInput{}, fmt.Errorf("%w: %s", ErrCaseNotFound, req.CaseID)
	}

	policies, err := s.cases.ListPolicies(req.CaseID)
	if err != nil {
		logger.Warnf("Failed to load extra policies for case %s: %v", req.CaseID, err)
	}

	return docgen.GenerationInput{
		Client:    c.Client,
		Advisor:   c.Advisor,
		Case:      c,
		Policies:  policies,
		Persons:   c.Persons(),
		Signature: s.loadSignature(req.CaseID),
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
		Now:       time.Now(),
		Defaults:  s.defaults,
	}, nil
}

// loadSignature fetches the latest case signature and decodes its payload.
// Anything that fails here degrades to the handwritten placeholder; a bad
// signature asset never blocks document delivery.
func (s *GenerationService) loadSignature(caseID string) *docgen.SignatureAsset {
	sig, err := s.signatures.GetLatestByCase(caseID)
	if err != nil {
		logger.Warnf("Failed to load signature for case %s: %v", caseID, err)
		return nil
	}
	if sig == nil {
		return nil
	}

	pngData, err := base64.StdEncoding.DecodeString(sig.SignatureData)
	if err != nil {
		// hand the raw bytes to the assembler so the fallback is recorded
		pngData = []byte(sig.SignatureData)
	}

	signedAt := sig.CreatedAt
	if sig.SignedAt != nil {
		signedAt = *sig.SignedAt
	}
	return &docgen.SignatureAsset{PNG: pngData, SignedAt: signedAt}
}

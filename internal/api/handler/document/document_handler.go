package document

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsio/esignpro-backend/internal/docgen"
	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/internal/repository"
	documentService "github.com/opsio/esignpro-backend/internal/service/document"
)

type DocumentHandler struct {
	generation *documentService.GenerationService
	documents  *repository.DocumentRepository
}

func NewDocumentHandler(generation *documentService.GenerationService, documents *repository.DocumentRepository) *DocumentHandler {
	return &DocumentHandler{
		generation: generation,
		documents:  documents,
	}
}

// GenerateDocumentRequest is the body of POST /api/documents/generate
type GenerateDocumentRequest struct {
	DocumentType string            `json:"documentType"`
	CaseID       string            `json:"caseId"`
	Data         map[string]string `json:"data"`
}

// GenerateDocument runs one generation call
func (h *DocumentHandler) GenerateDocument(c *gin.Context) {
	var req GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if req.DocumentType == "" {
		model.HandleError(c, http.StatusBadRequest, fmt.Errorf("documentType is required"))
		return
	}
	if req.CaseID == "" {
		model.HandleError(c, http.StatusBadRequest, fmt.Errorf("caseId is required"))
		return
	}

	result, err := h.generation.Generate(c.Request.Context(), documentService.GenerateRequest{
		DocumentType: req.DocumentType,
		CaseID:       req.CaseID,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
		Data:         req.Data,
	})
	if err != nil {
		switch {
		case errors.Is(err, documentService.ErrTemplateNotFound),
			errors.Is(err, documentService.ErrCaseNotFound):
			model.HandleError(c, http.StatusNotFound, err)
		case errors.Is(err, docgen.ErrUnsupportedDocumentType):
			model.HandleError(c, http.StatusBadRequest, err)
		default:
			model.HandleError(c, http.StatusInternalServerError, err, "Document generation failed")
		}
		return
	}

	c.JSON(http.StatusOK, model.DocumentResponse{
		Success:  true,
		Document: payloadFor(result.Document, result.Saved),
	})
}

// GetDocument fetches one generated document record
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.documents.GetByID(id)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to load document")
		return
	}
	if doc == nil {
		model.HandleError(c, http.StatusNotFound, fmt.Errorf("document %s not found", id))
		return
	}

	c.JSON(http.StatusOK, model.DocumentResponse{
		Success:  true,
		Document: payloadFor(doc, true),
	})
}

// ListCaseDocuments lists every artifact generated for a case
func (h *DocumentHandler) ListCaseDocuments(c *gin.Context) {
	caseID := c.Param("caseId")

	docs, err := h.documents.ListByCase(caseID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to list documents")
		return
	}

	c.JSON(http.StatusOK, model.Success(docs))
}

// payloadFor maps a record to the wire payload: inline content for html,
// base64 for binary artifacts
func payloadFor(doc *model.GeneratedDocument, saved bool) *model.DocumentPayload {
	payload := &model.DocumentPayload{
		ID:            doc.ID,
		DocumentType:  doc.DocumentType,
		MimeType:      doc.MimeType,
		FileExtension: doc.FileExtension,
		Saved:         saved,
	}
	if doc.MimeType == model.MimeTypeHTML {
		payload.Content = doc.Content
	} else {
		payload.Base64 = doc.Content
	}
	return payload
}

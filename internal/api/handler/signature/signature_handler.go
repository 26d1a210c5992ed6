package signature

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/internal/repository"
	"github.com/opsio/esignpro-backend/pkg/logger"
)

type SignatureHandler struct {
	signatures *repository.SignatureRepository
	cases      *repository.CaseRepository
	clients    *repository.ClientRepository
}

func NewSignatureHandler(
	signatures *repository.SignatureRepository,
	cases *repository.CaseRepository,
	clients *repository.ClientRepository,
) *SignatureHandler {
	return &SignatureHandler{
		signatures: signatures,
		cases:      cases,
		clients:    clients,
	}
}

// CreateCaseSignatureRequest is the body of POST /api/signatures/case/:caseId
type CreateCaseSignatureRequest struct {
	// SignatureData is the PNG payload, base64 encoded
	SignatureData string `json:"signatureData"`
}

// CreateCaseSignature stores a signature captured for one case
func (h *SignatureHandler) CreateCaseSignature(c *gin.Context) {
	caseID := c.Param("caseId")

	var req CreateCaseSignatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}
	if req.SignatureData == "" {
		model.HandleError(c, http.StatusBadRequest, fmt.Errorf("signatureData is required"))
		return
	}
	if _, err := base64.StdEncoding.DecodeString(req.SignatureData); err != nil {
		model.HandleError(c, http.StatusBadRequest, fmt.Errorf("signatureData is not valid base64"))
		return
	}

	insuranceCase, err := h.cases.GetByID(caseID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to load case")
		return
	}
	if insuranceCase == nil {
		model.HandleError(c, http.StatusNotFound, fmt.Errorf("case %s not found", caseID))
		return
	}

	now := time.Now()
	sum := sha256.Sum256([]byte(req.SignatureData))
	sig := &model.CaseSignature{
		CaseID:        caseID,
		SignatureData: req.SignatureData,
		SignedAt:      &now,
		IPAddress:     c.ClientIP(),
		UserAgent:     c.Request.UserAgent(),
		Hash:          hex.EncodeToString(sum[:]),
	}
	if err := h.signatures.CreateCaseSignature(sig); err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to store signature")
		return
	}

	if err := h.cases.UpdateStatus(caseID, model.CaseStatusSigned); err != nil {
		// the signature is stored; a failed status bump is not fatal
		logger.Warnf("Signature stored but status update failed for case %s: %v", caseID, err)
	}

	c.JSON(http.StatusOK, model.Success(gin.H{
		"id":        sig.ID,
		"signed_at": sig.SignedAt,
		"hash":      sig.Hash,
	}))
}

// ListClientSignatures returns a client's reusable signatures
func (h *SignatureHandler) ListClientSignatures(c *gin.Context) {
	clientID := c.Param("clientId")

	client, err := h.clients.GetByID(clientID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to load client")
		return
	}
	if client == nil {
		model.HandleError(c, http.StatusNotFound, fmt.Errorf("client %s not found", clientID))
		return
	}

	sigs, err := h.signatures.ListClientSignatures(clientID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to list signatures")
		return
	}
	c.JSON(http.StatusOK, model.Success(sigs))
}

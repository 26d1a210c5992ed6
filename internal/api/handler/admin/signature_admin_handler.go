package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsio/esignpro-backend/internal/model"
	signatureService "github.com/opsio/esignpro-backend/internal/service/signature"
)

// SignatureAdminHandler exposes the reconciliation batch job and the
// single-client repair operations
type SignatureAdminHandler struct {
	reconcile *signatureService.ReconcileService
}

func NewSignatureAdminHandler(reconcile *signatureService.ReconcileService) *SignatureAdminHandler {
	return &SignatureAdminHandler{reconcile: reconcile}
}

// ReconcileSignatures runs one batch pass and returns the aggregate report
func (h *SignatureAdminHandler) ReconcileSignatures(c *gin.Context) {
	report, err := h.reconcile.Run(c.Request.Context())
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Signature reconciliation failed")
		return
	}
	c.JSON(http.StatusOK, model.Success(report))
}

// ReactivateSignatures flips a client's inactive signatures back to active
func (h *SignatureAdminHandler) ReactivateSignatures(c *gin.Context) {
	clientID := c.Param("clientId")

	count, err := h.reconcile.ReactivateAll(clientID)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to reactivate signatures")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"reactivated": count}))
}

// SetDefaultSignature designates one signature as the client's default
func (h *SignatureAdminHandler) SetDefaultSignature(c *gin.Context) {
	clientID := c.Param("clientId")
	signatureID := c.Param("signatureId")

	if err := h.reconcile.SetDefault(clientID, signatureID); err != nil {
		model.HandleError(c, http.StatusBadRequest, err, "Failed to set default signature")
		return
	}
	c.JSON(http.StatusOK, model.Success(gin.H{"default_signature_id": signatureID}))
}

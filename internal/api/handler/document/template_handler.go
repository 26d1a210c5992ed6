package document

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/internal/repository"
)

// TemplateHandler exposes the template catalog read-only; templates are
// administered out of band
type TemplateHandler struct {
	templates *repository.TemplateRepository
}

func NewTemplateHandler(templates *repository.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListTemplates returns the full template catalog
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templates.List()
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to list templates")
		return
	}
	c.JSON(http.StatusOK, model.Success(templates))
}

// GetTemplate fetches one template
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id := c.Param("id")

	tpl, err := h.templates.GetByID(id)
	if err != nil {
		model.HandleError(c, http.StatusInternalServerError, err, "Failed to load template")
		return
	}
	if tpl == nil {
		model.HandleError(c, http.StatusNotFound, fmt.Errorf("template %s not found", id))
		return
	}
	c.JSON(http.StatusOK, model.Success(tpl))
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	templateapp "github.com/labelgen/backend/internal/application/template"
	"github.com/labelgen/backend/internal/interfaces/http/dto"
)

// TemplateHandler handles label template API endpoints
type TemplateHandler struct {
	BaseHandler
	templateService *templateapp.Service
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateService *templateapp.Service) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
	}
}

// Create handles POST /templates
func (h *TemplateHandler) Create(c *gin.Context) {
	var req templateapp.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.templateService.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID handles GET /templates/:id
func (h *TemplateHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	result, err := h.templateService.GetTemplate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List handles GET /templates
func (h *TemplateHandler) List(c *gin.Context) {
	req := templateapp.ListTemplatesRequest{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.templateService.ListTemplates(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// Update handles PUT /templates/:id
func (h *TemplateHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	var req templateapp.UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.templateService.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete handles DELETE /templates/:id. Deletion fails with 409 while
// labels still reference the template.
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Template deleted successfully"})
}

// Preview handles GET /templates/:id/preview. It renders one sample cell
// with catalog sample values so the client can show the template's look
// without any labels existing yet.
func (h *TemplateHandler) Preview(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid template ID format")
		return
	}

	result, err := h.templateService.PreviewTemplate(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ListFields handles GET /templates/fields. The field catalog is static,
// so this never fails.
func (h *TemplateHandler) ListFields(c *gin.Context) {
	h.Success(c, h.templateService.ListFields())
}

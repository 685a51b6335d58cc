package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	labelapp "github.com/labelgen/backend/internal/application/label"
	"github.com/labelgen/backend/internal/interfaces/http/dto"
)

// LabelHandler handles part label API endpoints
type LabelHandler struct {
	BaseHandler
	labelService *labelapp.Service
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelService *labelapp.Service) *LabelHandler {
	return &LabelHandler{
		labelService: labelService,
	}
}

// Create handles POST /labels
func (h *LabelHandler) Create(c *gin.Context) {
	var req labelapp.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.labelService.CreateLabel(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID handles GET /labels/:id
func (h *LabelHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid label ID format")
		return
	}

	result, err := h.labelService.GetLabel(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List handles GET /labels
func (h *LabelHandler) List(c *gin.Context) {
	req := labelapp.ListLabelsRequest{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.labelService.ListLabels(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.Size)
}

// Update handles PUT /labels/:id
func (h *LabelHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid label ID format")
		return
	}

	var req labelapp.UpdateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.labelService.UpdateLabel(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete handles DELETE /labels/:id
func (h *LabelHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid label ID format")
		return
	}

	if err := h.labelService.DeleteLabel(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Label deleted successfully"})
}

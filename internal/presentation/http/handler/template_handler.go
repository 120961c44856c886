package handler

import (
	"github.com/factura/factura-api/internal/application/service"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TemplateHandler handles document template HTTP requests
type TemplateHandler struct {
	templateService *service.TemplateService
}

// NewTemplateHandler creates a new template handler
func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// List handles listing the user's templates
func (h *TemplateHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	templates, err := h.templateService.ListTemplates(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Templates retrieved successfully", templates)
}

// Create handles creating a template
func (h *TemplateHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Type      enum.TemplateType `json:"type"`
		Name      string            `json:"name" binding:"required,min=1,max=255"`
		Content   string            `json:"content"`
		IsDefault bool              `json:"is_default"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), &service.CreateTemplateInput{
		UserID:    *userID,
		Type:      req.Type,
		Name:      req.Name,
		Content:   req.Content,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Template created successfully", template)
}

// Get handles retrieving a single template
func (h *TemplateHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	template, err := h.templateService.GetTemplate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Template retrieved successfully", template)
}

// Update handles updating a template
func (h *TemplateHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	var req struct {
		Name    string  `json:"name"`
		Content *string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	template, err := h.templateService.UpdateTemplate(c.Request.Context(), &service.UpdateTemplateInput{
		ID:      id,
		UserID:  *userID,
		Name:    req.Name,
		Content: req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Template updated successfully", template)
}

// Delete handles deleting a template
func (h *TemplateHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	if err := h.templateService.DeleteTemplate(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Template deleted successfully", nil)
}

// SetDefault marks a template as the default for its document type
func (h *TemplateHandler) SetDefault(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid template ID")
		return
	}

	template, err := h.templateService.SetDefaultTemplate(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Default template updated successfully", template)
}

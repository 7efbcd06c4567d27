package handlers

import (
	"net/http"

	"github.com/Mr-K2901/TnP-Portal/internal/dtos"
	"github.com/Mr-K2901/TnP-Portal/internal/services"
	"github.com/gin-gonic/gin"
)

type EmailTemplateHandler struct {
	Templates *services.TemplateService
}

func NewEmailTemplateHandler(templates *services.TemplateService) *EmailTemplateHandler {
	return &EmailTemplateHandler{Templates: templates}
}

// List is GET /api/email-templates. First call seeds the pre-built set.
func (h *EmailTemplateHandler) List(c *gin.Context) {
	templates, err := h.Templates.ListEmail()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates, "total": len(templates)})
}

// Get is GET /api/email-templates/:id
func (h *EmailTemplateHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tpl, err := h.Templates.GetEmail(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// Create is POST /api/email-templates
func (h *EmailTemplateHandler) Create(c *gin.Context) {
	var req dtos.EmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	tpl, err := h.Templates.CreateEmail(req.Name, req.Subject, req.BodyHTML, req.Variables)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

// Update is PUT /api/email-templates/:id. Pre-built templates are immutable.
func (h *EmailTemplateHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dtos.EmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	tpl, err := h.Templates.UpdateEmail(id, req.Name, req.Subject, req.BodyHTML, req.Variables)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

// Delete is DELETE /api/email-templates/:id. Pre-built templates stay.
func (h *EmailTemplateHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.Templates.DeleteEmail(id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Template deleted"})
}

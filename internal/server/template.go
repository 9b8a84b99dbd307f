package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/druckwerk/belegdesigner/internal/element"
	templatedomain "github.com/druckwerk/belegdesigner/internal/template/domain"
)

type saveTemplateRequest struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DocumentType string            `json:"document_type"`
	PaperFormat  string            `json:"paper_format"`
	Elements     []element.Element `json:"elements"`
}

// @Summary      Save Template
// @Description  Insert a new template (id empty or "0") or update the element layout of an existing one
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        request body saveTemplateRequest true "Save Template Request"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates [post]
func (s *Server) SaveTemplate(c *gin.Context) {
	var req saveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.Save(c.Request.Context(), templatedomain.SaveRequest{
		ID:           strings.TrimSpace(req.ID),
		Name:         strings.TrimSpace(req.Name),
		DocumentType: strings.TrimSpace(req.DocumentType),
		PaperFormat:  strings.TrimSpace(req.PaperFormat),
		Elements:     req.Elements,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Templates
// @Description  List the template catalog, optionally per document type
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        document_type     query     string  false  "Document Type"
// @Param        include_inactive  query     bool    false  "Include Inactive"
// @Success      200  {object}  []templatedomain.Response
// @Router       /templates [get]
func (s *Server) ListTemplates(c *gin.Context) {
	var query templatedomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.templateSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Template
// @Description  Load a template by ID; a corrupt stored layout degrades to an empty element list plus a warning
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates/{id} [get]
func (s *Server) GetTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.templateSvc.Load(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Deactivate Template
// @Description  Retire a template from the catalog without deleting it
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  templatedomain.Response
// @Router       /templates/{id}/deactivate [post]
func (s *Server) DeactivateTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.templateSvc.Deactivate(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

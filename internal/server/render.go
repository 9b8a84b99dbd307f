package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/druckwerk/belegdesigner/internal/render"
)

type previewTemplateRequest struct {
	Context render.DataContext `json:"context"`
	// Format selects the response payload: "tree" (default) or "html".
	Format string `json:"format"`
}

// @Summary      Preview Template
// @Description  Resolve a template against a document-data context and return the visual tree or an HTML preview
// @Tags         render
// @Accept       json
// @Produce      json
// @Param        id       path  string                  true  "Template ID"
// @Param        request  body  previewTemplateRequest  true  "Preview Request"
// @Success      200  {object}  render.VisualTree
// @Router       /templates/{id}/preview [post]
func (s *Server) PreviewTemplate(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req previewTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "tree"
	}
	if format != "tree" && format != "html" {
		AbortWithError(c, newValidationError("format", "invalid_format", "format must be tree or html"))
		return
	}

	tmpl, err := s.templateSvc.Load(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	tree := s.engine.Resolve(c.Request.Context(), render.TemplateInfo{
		ID:          tmpl.ID,
		Name:        tmpl.Name,
		PaperFormat: tmpl.PaperFormat,
	}, tmpl.Elements, req.Context)

	// A corrupt stored layout surfaces as an empty preview plus the load
	// warning, never as a failure.
	warnings := tree.Warnings
	if tmpl.Warning != "" {
		warnings = append([]string{tmpl.Warning}, warnings...)
	}

	if format == "html" {
		html, err := s.preview.Render(tree)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"html": html, "warnings": warnings}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"tree": tree, "warnings": warnings}})
}

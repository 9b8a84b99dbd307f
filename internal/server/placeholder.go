package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/druckwerk/belegdesigner/internal/placeholder"
)

// @Summary      List Placeholders
// @Description  List the placeholder catalog the designer's toolbox offers
// @Tags         placeholders
// @Accept       json
// @Produce      json
// @Success      200  {object}  []placeholder.Group
// @Router       /placeholders [get]
func (s *Server) ListPlaceholders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": placeholder.Groups()})
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
)

func (s *Server) createFirm(c *gin.Context) {
	var req firmdomain.CreateFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.firmSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listFirms(c *gin.Context) {
	firms, err := s.firmSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"firms": firms})
}

func (s *Server) getFirm(c *gin.Context) {
	current, err := s.firmSvc.GetByID(c.Request.Context(), firmID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, current)
}

func (s *Server) updateFirm(c *gin.Context) {
	var req firmdomain.UpdateFirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	updated, err := s.firmSvc.Update(c.Request.Context(), firmID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	revenuedomain "github.com/juristech/legara/internal/revenuetarget/domain"
)

func (s *Server) setRevenueTarget(c *gin.Context) {
	var req revenuedomain.SetTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	target, err := s.targetSvc.Set(c.Request.Context(), firmID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

func (s *Server) listRevenueTargets(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	targets, err := s.targetSvc.ListByFirmYear(c.Request.Context(), firmID(c), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"targets": targets})
}

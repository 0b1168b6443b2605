package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/pkg/db/pagination"
)

func (s *Server) createCase(c *gin.Context) {
	var req casefiledomain.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.caseSvc.Create(c.Request.Context(), firmID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listCases(c *gin.Context) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var deptID snowflake.ID
	if raw := c.Query("department_id"); raw != "" {
		parsed, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		deptID = parsed
	}

	resp, err := s.caseSvc.List(c.Request.Context(), firmID(c), casefiledomain.ListCasesRequest{
		Filter: casefiledomain.ListFilter{
			Type:         c.Query("type"),
			Status:       c.Query("status"),
			DepartmentID: deptID,
		},
		Page: page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getCase(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	cf, err := s.caseSvc.GetByID(c.Request.Context(), firmID(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cf)
}

func (s *Server) updateCaseStatus(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	cf, err := s.caseSvc.UpdateStatus(c.Request.Context(), firmID(c), id, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, cf)
}

func (s *Server) escalateCase(c *gin.Context) {
	id, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	legal, err := s.caseSvc.Escalate(c.Request.Context(), firmID(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.notifier != nil {
		if f, ferr := s.firmSvc.GetByID(c.Request.Context(), firmID(c)); ferr == nil {
			s.notifier.CaseEscalated(c.Request.Context(), f, legal)
		}
	}
	c.JSON(http.StatusCreated, legal)
}

func (s *Server) caseAging(c *gin.Context) {
	aging, err := s.caseSvc.Aging(c.Request.Context(), firmID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.caseSvc.AgingSummary(c.Request.Context(), firmID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": aging, "summary": summary})
}

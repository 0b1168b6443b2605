package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	departmentdomain "github.com/juristech/legara/internal/department/domain"
)

func (s *Server) createDepartment(c *gin.Context) {
	var req departmentdomain.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	created, err := s.departmentSvc.Create(c.Request.Context(), firmID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listDepartments(c *gin.Context) {
	departments, err := s.departmentSvc.ListByFirm(c.Request.Context(), firmID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": departments})
}

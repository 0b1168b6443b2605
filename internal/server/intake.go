package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
)

type intakeRequest struct {
	FirmPrefix     string  `json:"firm_prefix" binding:"required"`
	DepartmentCode string  `json:"department_code" binding:"required"`
	DebtorName     string  `json:"debtor_name" binding:"required"`
	DebtorEmail    string  `json:"debtor_email"`
	Principal      float64 `json:"principal" binding:"required"`
}

// createIntakeCase is the public intake endpoint: creditors submit new
// collection matters by firm prefix and department code, without an
// X-Firm-ID header.
func (s *Server) createIntakeCase(c *gin.Context) {
	var req intakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	firm, err := s.firmSvc.GetByPrefix(ctx, req.FirmPrefix)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	departments, err := s.departmentSvc.ListByFirm(ctx, firm.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.DepartmentCode))
	var deptIdx = -1
	for i := range departments {
		if departments[i].Code == code {
			deptIdx = i
			break
		}
	}
	if deptIdx == -1 {
		AbortWithError(c, ErrNotFound)
		return
	}

	created, err := s.caseSvc.Create(ctx, firm.ID, casefiledomain.CreateCaseRequest{
		DepartmentID: departments[deptIdx].ID,
		Type:         casefiledomain.TypeCredit,
		DebtorName:   req.DebtorName,
		DebtorEmail:  req.DebtorEmail,
		Principal:    req.Principal,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"number": created.Number,
		"status": created.Status,
	})
}

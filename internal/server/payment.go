package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
)

func (s *Server) recordPayment(c *gin.Context) {
	var req paymentdomain.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	recorded, err := s.paymentSvc.Record(c.Request.Context(), firmID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if s.notifier != nil {
		ctx := c.Request.Context()
		f, ferr := s.firmSvc.GetByID(ctx, firmID(c))
		cf, cerr := s.caseSvc.GetByID(ctx, firmID(c), recorded.CaseID)
		if ferr == nil && cerr == nil {
			s.notifier.PaymentReceived(ctx, f, cf.Number, recorded)
		}
	}
	c.JSON(http.StatusCreated, recorded)
}

func (s *Server) listCasePayments(c *gin.Context) {
	caseID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	payments, err := s.paymentSvc.ListByCase(c.Request.Context(), firmID(c), caseID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (s *Server) caseBalance(c *gin.Context) {
	caseID, err := snowflake.ParseString(c.Param("id"))
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	balance, err := s.paymentSvc.Balance(c.Request.Context(), firmID(c), caseID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

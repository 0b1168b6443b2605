package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (s *Server) revenueReport(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rpt, err := s.reportSvc.Revenue(c.Request.Context(), firmID(c), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rpt)
}

func (s *Server) revenueReportPDF(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	doc, err := s.reportSvc.RevenuePDF(c.Request.Context(), firmID(c), year)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	servePDF(c, doc, "revenue-report.pdf")
}

func (s *Server) agingReportPDF(c *gin.Context) {
	doc, err := s.reportSvc.AgingPDF(c.Request.Context(), firmID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	servePDF(c, doc, "aging-report.pdf")
}

func servePDF(c *gin.Context, doc io.Reader, filename string) {
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, doc)
}

// Package report assembles firm-level revenue and aging reports.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/internal/clock"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
	"github.com/juristech/legara/internal/providers/pdf"
	revenuedomain "github.com/juristech/legara/internal/revenuetarget/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RevenueRow compares one month's collected total against its target.
type RevenueRow struct {
	Month     int     `json:"month"`
	Target    float64 `json:"target"`
	Collected float64 `json:"collected"`
	Variance  float64 `json:"variance"`
}

type RevenueReport struct {
	FirmID         snowflake.ID `json:"firm_id"`
	Year           int          `json:"year"`
	Rows           []RevenueRow `json:"rows"`
	TotalTarget    float64      `json:"total_target"`
	TotalCollected float64      `json:"total_collected"`
}

type Service interface {
	Revenue(ctx context.Context, firmID snowflake.ID, year int) (*RevenueReport, error)
	RevenuePDF(ctx context.Context, firmID snowflake.ID, year int) (io.Reader, error)
	AgingPDF(ctx context.Context, firmID snowflake.ID) (io.Reader, error)
}

type Params struct {
	fx.In

	Firms    firmdomain.Repository
	Targets  revenuedomain.Service
	Payments paymentdomain.Service
	Cases    casefiledomain.Service
	PDF      pdf.Provider
	Clock    clock.Clock
	Log      *zap.Logger
}

type service struct {
	firms    firmdomain.Repository
	targets  revenuedomain.Service
	payments paymentdomain.Service
	cases    casefiledomain.Service
	pdf      pdf.Provider
	clock    clock.Clock
	log      *zap.Logger
}

func NewService(p Params) Service {
	return &service{
		firms:    p.Firms,
		targets:  p.Targets,
		payments: p.Payments,
		cases:    p.Cases,
		pdf:      p.PDF,
		clock:    p.Clock,
		log:      p.Log.Named("report.service"),
	}
}

// Revenue builds the monthly target-versus-collected comparison for a
// year. A firm without a target for the year still gets a report; the
// target columns are simply zero.
func (s *service) Revenue(ctx context.Context, firmID snowflake.ID, year int) (*RevenueReport, error) {
	monthlyTargets := make([]float64, 12)
	target, err := s.targets.Get(ctx, firmID, 0, year)
	switch {
	case err == nil:
		for _, m := range target.Months.Data() {
			if m.Month >= 1 && m.Month <= 12 {
				monthlyTargets[m.Month-1] = m.Monthly
			}
		}
	case err != revenuedomain.ErrTargetNotFound:
		return nil, err
	}

	totals, err := s.payments.MonthlyTotals(ctx, firmID, year)
	if err != nil {
		return nil, err
	}
	collected := make([]float64, 12)
	for _, total := range totals {
		if total.Month >= 1 && total.Month <= 12 {
			collected[total.Month-1] = total.Total
		}
	}

	report := &RevenueReport{FirmID: firmID, Year: year, Rows: make([]RevenueRow, 12)}
	for i := 0; i < 12; i++ {
		report.Rows[i] = RevenueRow{
			Month:     i + 1,
			Target:    monthlyTargets[i],
			Collected: collected[i],
			Variance:  collected[i] - monthlyTargets[i],
		}
		report.TotalTarget += monthlyTargets[i]
		report.TotalCollected += collected[i]
	}
	return report, nil
}

func (s *service) RevenuePDF(ctx context.Context, firmID snowflake.ID, year int) (io.Reader, error) {
	firm, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		return nil, err
	}

	report, err := s.Revenue(ctx, firmID, year)
	if err != nil {
		return nil, err
	}

	data := pdf.RevenueReportData{
		FirmName:       firm.Name,
		Year:           year,
		TotalTarget:    formatAmount(report.TotalTarget),
		TotalCollected: formatAmount(report.TotalCollected),
	}
	for _, row := range report.Rows {
		data.Rows = append(data.Rows, pdf.RevenueRow{
			Month:     time.Month(row.Month).String(),
			Target:    formatAmount(row.Target),
			Collected: formatAmount(row.Collected),
			Variance:  formatAmount(row.Variance),
		})
	}
	return s.pdf.GenerateRevenueReport(ctx, data)
}

func (s *service) AgingPDF(ctx context.Context, firmID snowflake.ID) (io.Reader, error) {
	firm, err := s.firms.GetByID(ctx, firmID)
	if err != nil {
		return nil, err
	}

	summary, err := s.cases.AgingSummary(ctx, firmID)
	if err != nil {
		return nil, err
	}

	data := pdf.AgingReportData{
		FirmName: firm.Name,
		AsOf:     s.clock.Now().Format("2006-01-02"),
	}
	for _, bucket := range summary {
		data.Rows = append(data.Rows, pdf.AgingRow{
			Bucket:    bucket.Label,
			Count:     bucket.Count,
			Principal: formatAmount(bucket.Principal),
		})
	}
	return s.pdf.GenerateAgingReport(ctx, data)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

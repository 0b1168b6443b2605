package pdf

import (
	"context"
	"io"
)

type Provider interface {
	GenerateRevenueReport(ctx context.Context, data RevenueReportData) (io.Reader, error)
	GenerateAgingReport(ctx context.Context, data AgingReportData) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateRevenueReport(ctx context.Context, data RevenueReportData) (io.Reader, error) {
	return nil, nil
}

func (p *NoOpProvider) GenerateAgingReport(ctx context.Context, data AgingReportData) (io.Reader, error) {
	return nil, nil
}

package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type RevenueReportData struct {
	FirmName string
	Year     int

	Rows []RevenueRow

	TotalTarget    string
	TotalCollected string
}

type RevenueRow struct {
	Month     string
	Target    string
	Collected string
	Variance  string
}

type AgingReportData struct {
	FirmName string
	AsOf     string

	Rows []AgingRow
}

type AgingRow struct {
	Bucket    string
	Count     int
	Principal string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateRevenueReport(ctx context.Context, data RevenueReportData) (io.Reader, error) {
	m := maroto.New(reportConfig())

	m.AddRow(12,
		text.NewCol(12, fmt.Sprintf("Revenue Report %d", data.Year), props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, data.FirmName, props.Text{Size: 11}),
	)

	m.AddRow(8,
		text.NewCol(3, "Month", props.Text{Style: fontstyle.Bold}),
		text.NewCol(3, "Target", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, "Collected", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, "Variance", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)

	for _, row := range data.Rows {
		m.AddRow(6,
			text.NewCol(3, row.Month),
			text.NewCol(3, row.Target, props.Text{Align: align.Right}),
			text.NewCol(3, row.Collected, props.Text{Align: align.Right}),
			text.NewCol(3, row.Variance, props.Text{Align: align.Right}),
		)
	}

	m.AddRow(10,
		text.NewCol(3, "Total", props.Text{Style: fontstyle.Bold}),
		text.NewCol(3, data.TotalTarget, props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, data.TotalCollected, props.Text{Style: fontstyle.Bold, Align: align.Right}),
		col.New(3),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate revenue report: %w", err)
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func (p *PDFProvider) GenerateAgingReport(ctx context.Context, data AgingReportData) (io.Reader, error) {
	m := maroto.New(reportConfig())

	m.AddRow(12,
		text.NewCol(12, "Receivables Aging", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, fmt.Sprintf("%s, as of %s", data.FirmName, data.AsOf), props.Text{Size: 11}),
	)

	m.AddRow(8,
		text.NewCol(4, "Bucket", props.Text{Style: fontstyle.Bold}),
		text.NewCol(4, "Cases", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(4, "Principal", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)

	for _, row := range data.Rows {
		m.AddRow(6,
			text.NewCol(4, row.Bucket),
			text.NewCol(4, fmt.Sprintf("%d", row.Count), props.Text{Align: align.Right}),
			text.NewCol(4, row.Principal, props.Text{Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate aging report: %w", err)
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func reportConfig() *entity.Config {
	return config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
}

package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidAmount = errors.New("payment amount must be positive")
	ErrInvalidMethod = errors.New("unknown payment method")
)

type RecordPaymentRequest struct {
	CaseID     snowflake.ID `json:"case_id" binding:"required"`
	Amount     float64      `json:"amount" binding:"required"`
	Method     string       `json:"method" binding:"required"`
	Reference  string       `json:"reference"`
	ReceivedAt *time.Time   `json:"received_at"`
}

// CaseBalance summarizes recovery on a single case.
type CaseBalance struct {
	CaseID      snowflake.ID `json:"case_id"`
	Principal   float64      `json:"principal"`
	Paid        float64      `json:"paid"`
	Outstanding float64      `json:"outstanding"`
}

// MonthlyTotal is collected revenue for one calendar month.
type MonthlyTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

type Service interface {
	Record(ctx context.Context, firmID snowflake.ID, req RecordPaymentRequest) (*Payment, error)
	ListByCase(ctx context.Context, firmID, caseID snowflake.ID) ([]Payment, error)
	Balance(ctx context.Context, firmID, caseID snowflake.ID) (*CaseBalance, error)
	MonthlyTotals(ctx context.Context, firmID snowflake.ID, year int) ([]MonthlyTotal, error)
}

package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/pkg/db/pagination"
)

var (
	ErrCaseNotFound       = errors.New("case not found")
	ErrInvalidType        = errors.New("case type must be credit or legal")
	ErrInvalidDebtor      = errors.New("debtor name is required")
	ErrInvalidPrincipal   = errors.New("principal must be positive")
	ErrInvalidStatus      = errors.New("unknown case status")
	ErrAlreadyEscalated   = errors.New("case already escalated")
	ErrNotEscalatable     = errors.New("only credit cases can be escalated")
	ErrCaseClosed         = errors.New("case is closed")
	ErrInvalidDepartment  = errors.New("department does not belong to firm")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

type CreateCaseRequest struct {
	DepartmentID snowflake.ID           `json:"department_id" binding:"required"`
	Type         string                 `json:"type" binding:"required"`
	DebtorName   string                 `json:"debtor_name" binding:"required"`
	DebtorEmail  string                 `json:"debtor_email"`
	Principal    float64                `json:"principal" binding:"required"`
	OpenedAt     *time.Time             `json:"opened_at"`
	Metadata     map[string]interface{} `json:"metadata"`
}

type ListCasesRequest struct {
	Filter ListFilter
	Page   pagination.Pagination
}

type ListCasesResponse struct {
	Cases    []*CaseFile          `json:"cases"`
	PageInfo *pagination.PageInfo `json:"page_info"`
}

// AgingBucketSummary is one row of the receivables aging report.
type AgingBucketSummary struct {
	Label     string  `json:"label"`
	Count     int     `json:"count"`
	Principal float64 `json:"principal"`
}

// CaseAging classifies a single open case against the collections policy.
type CaseAging struct {
	Case        *CaseFile `json:"case"`
	DaysOverdue int       `json:"days_overdue"`
	Bucket      string    `json:"bucket"`
	RiskLevel   string    `json:"risk_level"`
}

type Service interface {
	Create(ctx context.Context, firmID snowflake.ID, req CreateCaseRequest) (*CaseFile, error)
	GetByID(ctx context.Context, firmID, id snowflake.ID) (*CaseFile, error)
	List(ctx context.Context, firmID snowflake.ID, req ListCasesRequest) (*ListCasesResponse, error)
	UpdateStatus(ctx context.Context, firmID, id snowflake.ID, status string) (*CaseFile, error)
	Escalate(ctx context.Context, firmID, id snowflake.ID) (*CaseFile, error)
	Aging(ctx context.Context, firmID snowflake.ID) ([]CaseAging, error)
	AgingSummary(ctx context.Context, firmID snowflake.ID) ([]AgingBucketSummary, error)
}

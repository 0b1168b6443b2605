package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrTargetNotFound = errors.New("revenue target not found")
	ErrInvalidTarget  = errors.New("yearly target must not be negative")
	ErrInvalidYear    = errors.New("year out of range")
)

type SetTargetRequest struct {
	DepartmentID snowflake.ID `json:"department_id"`
	Year         int          `json:"year" binding:"required"`
	YearlyTarget float64      `json:"yearly_target"`
}

type Service interface {
	Set(ctx context.Context, firmID snowflake.ID, req SetTargetRequest) (*RevenueTarget, error)
	Get(ctx context.Context, firmID, departmentID snowflake.ID, year int) (*RevenueTarget, error)
	ListByFirmYear(ctx context.Context, firmID snowflake.ID, year int) ([]RevenueTarget, error)
}

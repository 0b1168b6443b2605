package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrInvalidName        = errors.New("department name is required")
	ErrInvalidCode        = errors.New("department code must be 2-6 uppercase letters or digits")
	ErrCodeTaken          = errors.New("department code already in use for this firm")
)

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

type Service interface {
	Create(ctx context.Context, firmID snowflake.ID, req CreateDepartmentRequest) (*Department, error)
	GetByID(ctx context.Context, firmID, id snowflake.ID) (*Department, error)
	ListByFirm(ctx context.Context, firmID snowflake.ID) ([]Department, error)
}

package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrFirmNotFound  = errors.New("firm not found")
	ErrInvalidName   = errors.New("firm name is required")
	ErrInvalidPrefix = errors.New("firm prefix must be 2-6 uppercase letters or digits")
	ErrPrefixTaken   = errors.New("firm prefix already in use")
)

type CreateFirmRequest struct {
	Name         string `json:"name" binding:"required"`
	Prefix       string `json:"prefix"`
	ContactEmail string `json:"contact_email"`
}

type UpdateFirmRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

type Service interface {
	Create(ctx context.Context, req CreateFirmRequest) (*Firm, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Firm, error)
	GetByPrefix(ctx context.Context, prefix string) (*Firm, error)
	List(ctx context.Context) ([]Firm, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateFirmRequest) (*Firm, error)
}

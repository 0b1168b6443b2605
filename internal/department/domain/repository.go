package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, dept Department) error
	GetByID(ctx context.Context, firmID, id snowflake.ID) (*Department, error)
	ListByFirm(ctx context.Context, firmID snowflake.ID) ([]Department, error)
}

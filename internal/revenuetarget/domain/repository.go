package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, target RevenueTarget) error
	Get(ctx context.Context, firmID, departmentID snowflake.ID, year int) (*RevenueTarget, error)
	ListByFirmYear(ctx context.Context, firmID snowflake.ID, year int) ([]RevenueTarget, error)
}

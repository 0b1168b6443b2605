package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, payment Payment) error
	ListByCase(ctx context.Context, firmID, caseID snowflake.ID) ([]Payment, error)
	ListByFirmBetween(ctx context.Context, firmID snowflake.ID, from, to time.Time) ([]Payment, error)
	SumByCase(ctx context.Context, firmID, caseID snowflake.ID) (float64, error)
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, firm Firm) error
	GetByID(ctx context.Context, id snowflake.ID) (*Firm, error)
	GetByPrefix(ctx context.Context, prefix string) (*Firm, error)
	List(ctx context.Context) ([]Firm, error)
	Update(ctx context.Context, firm Firm) error
}

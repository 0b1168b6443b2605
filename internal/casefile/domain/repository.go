package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows List results. Zero values mean "any".
type ListFilter struct {
	Type         string
	Status       string
	DepartmentID snowflake.ID
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Insert(ctx context.Context, cf CaseFile) error
	GetByID(ctx context.Context, firmID, id snowflake.ID) (*CaseFile, error)
	GetByNumber(ctx context.Context, number string) (*CaseFile, error)
	List(ctx context.Context, firmID snowflake.ID, filter ListFilter, afterID snowflake.ID, limit int) ([]*CaseFile, error)
	UpdateStatus(ctx context.Context, firmID, id snowflake.ID, status string, updatedAt time.Time) error
	ListOpenByFirm(ctx context.Context, firmID snowflake.ID) ([]*CaseFile, error)
	ListOpenOpenedBefore(ctx context.Context, cutoff time.Time) ([]*CaseFile, error)
}

package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/revenuetarget/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Upsert(ctx context.Context, target domain.RevenueTarget) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO revenue_targets (id, firm_id, department_id, year, yearly_target, months, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (firm_id, department_id, year) DO UPDATE SET
		   yearly_target = EXCLUDED.yearly_target,
		   months = EXCLUDED.months,
		   updated_at = EXCLUDED.updated_at`,
		target.ID,
		target.FirmID,
		target.DepartmentID,
		target.Year,
		target.YearlyTarget,
		target.Months,
		target.CreatedAt,
		target.UpdatedAt,
	).Error
}

func (r *repository) Get(ctx context.Context, firmID, departmentID snowflake.ID, year int) (*domain.RevenueTarget, error) {
	var target domain.RevenueTarget
	err := r.db.WithContext(ctx).
		Where("firm_id = ? AND department_id = ? AND year = ?", firmID, departmentID, year).
		First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTargetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *repository) ListByFirmYear(ctx context.Context, firmID snowflake.ID, year int) ([]domain.RevenueTarget, error) {
	var targets []domain.RevenueTarget
	err := r.db.WithContext(ctx).
		Where("firm_id = ? AND year = ?", firmID, year).
		Order("department_id ASC").
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}

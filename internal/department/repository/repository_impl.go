package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/department/domain"
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

func (r *repository) Create(ctx context.Context, dept domain.Department) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO departments (id, firm_id, name, code, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		dept.ID,
		dept.FirmID,
		dept.Name,
		dept.Code,
		dept.CreatedAt,
		dept.UpdatedAt,
	).Error
}

func (r *repository) GetByID(ctx context.Context, firmID, id snowflake.ID) (*domain.Department, error) {
	var dept domain.Department
	err := r.db.WithContext(ctx).
		Where("firm_id = ? AND id = ?", firmID, id).
		First(&dept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrDepartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) ListByFirm(ctx context.Context, firmID snowflake.ID) ([]domain.Department, error) {
	var depts []domain.Department
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM departments WHERE firm_id = ? ORDER BY code ASC`,
		firmID,
	).Scan(&depts).Error
	if err != nil {
		return nil, err
	}
	return depts, nil
}

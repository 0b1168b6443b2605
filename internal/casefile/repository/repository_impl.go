package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/casefile/domain"
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

func (r *repository) Insert(ctx context.Context, cf domain.CaseFile) error {
	return r.db.WithContext(ctx).Create(&cf).Error
}

func (r *repository) GetByID(ctx context.Context, firmID, id snowflake.ID) (*domain.CaseFile, error) {
	var cf domain.CaseFile
	err := r.db.WithContext(ctx).
		Where("firm_id = ? AND id = ?", firmID, id).
		First(&cf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

func (r *repository) GetByNumber(ctx context.Context, number string) (*domain.CaseFile, error) {
	var cf domain.CaseFile
	err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&cf).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cf, nil
}

func (r *repository) List(ctx context.Context, firmID snowflake.ID, filter domain.ListFilter, afterID snowflake.ID, limit int) ([]*domain.CaseFile, error) {
	q := r.db.WithContext(ctx).
		Where("firm_id = ?", firmID)

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != 0 {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if afterID != 0 {
		q = q.Where("id > ?", afterID)
	}

	var cases []*domain.CaseFile
	err := q.Order("id ASC").Limit(limit).Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repository) UpdateStatus(ctx context.Context, firmID, id snowflake.ID, status string, updatedAt time.Time) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE case_files SET status = ?, updated_at = ? WHERE firm_id = ? AND id = ?`,
		status,
		updatedAt,
		firmID,
		id,
	).Error
}

func (r *repository) ListOpenByFirm(ctx context.Context, firmID snowflake.ID) ([]*domain.CaseFile, error) {
	var cases []*domain.CaseFile
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM case_files
		 WHERE firm_id = ? AND status IN (?, ?)
		 ORDER BY opened_at ASC`,
		firmID,
		domain.StatusOpen,
		domain.StatusInProgress,
	).Scan(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *repository) ListOpenOpenedBefore(ctx context.Context, cutoff time.Time) ([]*domain.CaseFile, error) {
	var cases []*domain.CaseFile
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM case_files
		 WHERE status IN (?, ?) AND opened_at < ?
		 ORDER BY firm_id ASC, opened_at ASC`,
		domain.StatusOpen,
		domain.StatusInProgress,
		cutoff,
	).Scan(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/firm/domain"
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

func (r *repository) Create(ctx context.Context, firm domain.Firm) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO firms (id, name, prefix, contact_email, metadata, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		firm.ID,
		firm.Name,
		firm.Prefix,
		firm.ContactEmail,
		firm.Metadata,
		firm.CreatedAt,
		firm.UpdatedAt,
	).Error
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Firm, error) {
	var firm domain.Firm
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&firm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFirmNotFound
	}
	if err != nil {
		return nil, err
	}
	return &firm, nil
}

func (r *repository) GetByPrefix(ctx context.Context, prefix string) (*domain.Firm, error) {
	var firm domain.Firm
	err := r.db.WithContext(ctx).
		Where("prefix = ?", prefix).
		First(&firm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFirmNotFound
	}
	if err != nil {
		return nil, err
	}
	return &firm, nil
}

func (r *repository) List(ctx context.Context) ([]domain.Firm, error) {
	var firms []domain.Firm
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM firms ORDER BY created_at ASC`,
	).Scan(&firms).Error
	if err != nil {
		return nil, err
	}
	return firms, nil
}

func (r *repository) Update(ctx context.Context, firm domain.Firm) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE firms SET name = ?, contact_email = ?, updated_at = ? WHERE id = ?`,
		firm.Name,
		firm.ContactEmail,
		firm.UpdatedAt,
		firm.ID,
	).Error
}

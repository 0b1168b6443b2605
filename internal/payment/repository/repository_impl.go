package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/payment/domain"
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

func (r *repository) Insert(ctx context.Context, payment domain.Payment) error {
	return r.db.WithContext(ctx).Exec(
		`INSERT INTO payments (id, firm_id, case_id, amount, method, reference, received_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		payment.ID,
		payment.FirmID,
		payment.CaseID,
		payment.Amount,
		payment.Method,
		payment.Reference,
		payment.ReceivedAt,
		payment.CreatedAt,
	).Error
}

func (r *repository) ListByCase(ctx context.Context, firmID, caseID snowflake.ID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM payments
		 WHERE firm_id = ? AND case_id = ?
		 ORDER BY received_at ASC`,
		firmID,
		caseID,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) ListByFirmBetween(ctx context.Context, firmID snowflake.ID, from, to time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Raw(
		`SELECT * FROM payments
		 WHERE firm_id = ? AND received_at >= ? AND received_at < ?
		 ORDER BY received_at ASC`,
		firmID,
		from,
		to,
	).Scan(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) SumByCase(ctx context.Context, firmID, caseID snowflake.ID) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE firm_id = ? AND case_id = ?`,
		firmID,
		caseID,
	).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

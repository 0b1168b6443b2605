package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	casefilerepository "github.com/juristech/legara/internal/casefile/repository"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/payment/domain"
	"github.com/juristech/legara/internal/payment/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	svc    domain.Service
	clock  *clock.FakeClock
	firmID snowflake.ID
	caseID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&casefiledomain.CaseFile{}, &domain.Payment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))

	firmID := node.Generate()
	cf := casefiledomain.CaseFile{
		ID:           node.Generate(),
		FirmID:       firmID,
		DepartmentID: node.Generate(),
		Number:       "ACME-COLL-2024-0001",
		Type:         casefiledomain.TypeCredit,
		Status:       casefiledomain.StatusOpen,
		DebtorName:   "Debtor Inc",
		Principal:    10_000,
		OpenedAt:     clk.Now(),
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    clk.Now(),
		UpdatedAt:    clk.Now(),
	}
	require.NoError(t, db.Create(&cf).Error)

	svc := NewService(Params{
		Repo:  repository.NewRepository(db),
		Cases: casefilerepository.NewRepository(db),
		GenID: node,
		Clock: clk,
		Log:   zap.NewNop(),
	})

	return &fixture{svc: svc, clock: clk, firmID: firmID, caseID: cf.ID}
}

func TestRecordAndBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, f.firmID, domain.RecordPaymentRequest{
		CaseID: f.caseID, Amount: 2_500, Method: "bank_transfer", Reference: "wire-991",
	})
	require.NoError(t, err)

	_, err = f.svc.Record(ctx, f.firmID, domain.RecordPaymentRequest{
		CaseID: f.caseID, Amount: 1_500, Method: "CARD",
	})
	require.NoError(t, err)

	balance, err := f.svc.Balance(ctx, f.firmID, f.caseID)
	require.NoError(t, err)
	assert.InDelta(t, 4_000, balance.Paid, 0.01)
	assert.InDelta(t, 6_000, balance.Outstanding, 0.01)

	payments, err := f.svc.ListByCase(ctx, f.firmID, f.caseID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, domain.MethodCard, payments[1].Method)
}

func TestRecordValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Record(ctx, f.firmID, domain.RecordPaymentRequest{
		CaseID: f.caseID, Amount: 0, Method: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.svc.Record(ctx, f.firmID, domain.RecordPaymentRequest{
		CaseID: f.caseID, Amount: 100, Method: "barter",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)

	otherFirm := snowflake.ID(424242)
	_, err = f.svc.Record(ctx, otherFirm, domain.RecordPaymentRequest{
		CaseID: f.caseID, Amount: 100, Method: "cash",
	})
	assert.ErrorIs(t, err, casefiledomain.ErrCaseNotFound)
}

func TestMonthlyTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	record := func(day time.Time, amount float64) {
		t.Helper()
		_, err := f.svc.Record(ctx, f.firmID, domain.RecordPaymentRequest{
			CaseID: f.caseID, Amount: amount, Method: "cash", ReceivedAt: &day,
		})
		require.NoError(t, err)
	}

	record(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 1_000)
	record(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), 500)
	record(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), 750)
	record(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 9_999) // prior year excluded

	totals, err := f.svc.MonthlyTotals(ctx, f.firmID, 2024)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, 1, totals[0].Month)
	assert.InDelta(t, 1_500, totals[0].Total, 0.01)
	assert.Equal(t, 3, totals[1].Month)
	assert.InDelta(t, 750, totals[1].Total, 0.01)
}

package report

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	casefilerepository "github.com/juristech/legara/internal/casefile/repository"
	"github.com/juristech/legara/internal/clock"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	firmrepository "github.com/juristech/legara/internal/firm/repository"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
	paymentrepository "github.com/juristech/legara/internal/payment/repository"
	paymentservice "github.com/juristech/legara/internal/payment/service"
	revenuedomain "github.com/juristech/legara/internal/revenuetarget/domain"
	revenuerepository "github.com/juristech/legara/internal/revenuetarget/repository"
	revenueservice "github.com/juristech/legara/internal/revenuetarget/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRevenueReport(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&firmdomain.Firm{},
		&casefiledomain.CaseFile{},
		&paymentdomain.Payment{},
		&revenuedomain.RevenueTarget{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	firm := firmdomain.Firm{
		ID: node.Generate(), Name: "Acme Collections", Prefix: "ACME",
		Metadata: datatypes.JSONMap{}, CreatedAt: clk.Now(), UpdatedAt: clk.Now(),
	}
	require.NoError(t, db.Create(&firm).Error)

	cf := casefiledomain.CaseFile{
		ID: node.Generate(), FirmID: firm.ID, DepartmentID: node.Generate(),
		Number: "ACME-COLL-2024-0001", Type: casefiledomain.TypeCredit,
		Status: casefiledomain.StatusOpen, DebtorName: "Debtor Inc",
		Principal: 500_000, OpenedAt: clk.Now(), Metadata: datatypes.JSONMap{},
		CreatedAt: clk.Now(), UpdatedAt: clk.Now(),
	}
	require.NoError(t, db.Create(&cf).Error)

	payments := paymentservice.NewService(paymentservice.Params{
		Repo:  paymentrepository.NewRepository(db),
		Cases: casefilerepository.NewRepository(db),
		GenID: node,
		Clock: clk,
		Log:   zap.NewNop(),
	})
	targets := revenueservice.NewService(revenueservice.Params{
		Repo:  revenuerepository.NewRepository(db),
		GenID: node,
		Clock: clk,
		Log:   zap.NewNop(),
	})

	_, err = targets.Set(ctx, firm.ID, revenuedomain.SetTargetRequest{Year: 2024, YearlyTarget: 1_200_000})
	require.NoError(t, err)

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	for _, p := range []struct {
		at     time.Time
		amount float64
	}{{jan, 80_000}, {jan, 30_000}, {feb, 40_000}} {
		at := p.at
		_, err = payments.Record(ctx, firm.ID, paymentdomain.RecordPaymentRequest{
			CaseID: cf.ID, Amount: p.amount, Method: "bank_transfer", ReceivedAt: &at,
		})
		require.NoError(t, err)
	}

	svc := NewService(Params{
		Firms:    firmrepository.NewRepository(db),
		Targets:  targets,
		Payments: payments,
		Clock:    clk,
		Log:      zap.NewNop(),
	})

	report, err := svc.Revenue(ctx, firm.ID, 2024)
	require.NoError(t, err)
	require.Len(t, report.Rows, 12)

	assert.InDelta(t, 100_000, report.Rows[0].Target, 1e-6)
	assert.InDelta(t, 110_000, report.Rows[0].Collected, 1e-6)
	assert.InDelta(t, 10_000, report.Rows[0].Variance, 1e-6)
	assert.InDelta(t, -60_000, report.Rows[1].Variance, 1e-6)
	assert.InDelta(t, 1_200_000, report.TotalTarget, 1e-6)
	assert.InDelta(t, 150_000, report.TotalCollected, 1e-6)
}

func TestRevenueReportWithoutTarget(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&firmdomain.Firm{},
		&casefiledomain.CaseFile{},
		&paymentdomain.Payment{},
		&revenuedomain.RevenueTarget{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	payments := paymentservice.NewService(paymentservice.Params{
		Repo:  paymentrepository.NewRepository(db),
		Cases: casefilerepository.NewRepository(db),
		GenID: node,
		Clock: clk,
		Log:   zap.NewNop(),
	})
	targets := revenueservice.NewService(revenueservice.Params{
		Repo:  revenuerepository.NewRepository(db),
		GenID: node,
		Clock: clk,
		Log:   zap.NewNop(),
	})

	svc := NewService(Params{
		Firms:    firmrepository.NewRepository(db),
		Targets:  targets,
		Payments: payments,
		Clock:    clk,
		Log:      zap.NewNop(),
	})

	report, err := svc.Revenue(context.Background(), 42, 2024)
	require.NoError(t, err)
	assert.Zero(t, report.TotalTarget)
	assert.Zero(t, report.TotalCollected)
}

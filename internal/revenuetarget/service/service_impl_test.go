package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/revenuetarget/domain"
	"github.com/juristech/legara/internal/revenuetarget/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.RevenueTarget{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		Repo:  repository.NewRepository(db),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		Log:   zap.NewNop(),
	})
}

func TestSetStoresBreakdown(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	target, err := svc.Set(ctx, 1, domain.SetTargetRequest{Year: 2024, YearlyTarget: 1_200_000})
	require.NoError(t, err)

	months := target.Months.Data()
	require.Len(t, months, 12)
	assert.InDelta(t, 100_000, months[0].Monthly, 1e-9)
	assert.InDelta(t, 20_000, months[0].Weekly, 1e-9)
	assert.Equal(t, 29, months[1].Days)
}

func TestSetReplacesExistingTarget(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.Set(ctx, 1, domain.SetTargetRequest{Year: 2024, YearlyTarget: 1_200_000})
	require.NoError(t, err)

	second, err := svc.Set(ctx, 1, domain.SetTargetRequest{Year: 2024, YearlyTarget: 2_400_000})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 2_400_000, second.YearlyTarget, 1e-9)
	assert.InDelta(t, 200_000, second.Months.Data()[0].Monthly, 1e-9)

	all, err := svc.ListByFirmYear(ctx, 1, 2024)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDepartmentScopesAreIndependent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, 1, domain.SetTargetRequest{Year: 2024, YearlyTarget: 1_200_000})
	require.NoError(t, err)
	_, err = svc.Set(ctx, 1, domain.SetTargetRequest{DepartmentID: 7, Year: 2024, YearlyTarget: 600_000})
	require.NoError(t, err)

	firmWide, err := svc.Get(ctx, 1, 0, 2024)
	require.NoError(t, err)
	assert.InDelta(t, 1_200_000, firmWide.YearlyTarget, 1e-9)

	dept, err := svc.Get(ctx, 1, 7, 2024)
	require.NoError(t, err)
	assert.InDelta(t, 600_000, dept.YearlyTarget, 1e-9)
}

func TestSetValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, 1, domain.SetTargetRequest{Year: 2024, YearlyTarget: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)

	_, err = svc.Set(ctx, 1, domain.SetTargetRequest{Year: 1999, YearlyTarget: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidYear)

	_, err = svc.Get(ctx, 1, 0, 2030)
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

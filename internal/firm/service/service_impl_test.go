package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/firm/domain"
	"github.com/juristech/legara/internal/firm/repository"
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
	require.NoError(t, db.AutoMigrate(&domain.Firm{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(Params{
		DB:    db,
		Repo:  repository.NewRepository(db),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		Log:   zap.NewNop(),
	})
}

func TestCreateDerivesPrefix(t *testing.T) {
	svc := newTestService(t)

	firm, err := svc.Create(context.Background(), domain.CreateFirmRequest{Name: "Acme Collections LLP"})
	require.NoError(t, err)
	assert.Equal(t, "ACMECO", firm.Prefix)
	assert.Equal(t, "Acme Collections LLP", firm.Name)
}

func TestCreateRejectsBadPrefix(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateFirmRequest{Name: "Acme", Prefix: "toolongprefix"})
	assert.ErrorIs(t, err, domain.ErrInvalidPrefix)

	_, err = svc.Create(context.Background(), domain.CreateFirmRequest{Name: "Acme", Prefix: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidPrefix)
}

func TestCreateDuplicatePrefix(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateFirmRequest{Name: "First Firm", Prefix: "ACME"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateFirmRequest{Name: "Second Firm", Prefix: "ACME"})
	assert.ErrorIs(t, err, domain.ErrPrefixTaken)
}

func TestUpdateFirm(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	firm, err := svc.Create(ctx, domain.CreateFirmRequest{Name: "Acme", Prefix: "ACME"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, firm.ID, domain.UpdateFirmRequest{ContactEmail: "ops@acme.example"})
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.example", updated.ContactEmail)
	assert.Equal(t, "Acme", updated.Name)
}

func TestDerivePrefix(t *testing.T) {
	assert.Equal(t, "ACMECO", DerivePrefix("Acme Collections"))
	assert.Equal(t, "MULLER", DerivePrefix("Müller & Partner"))
	assert.Equal(t, "FM", DerivePrefix("!!"))
}

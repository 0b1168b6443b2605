package casenumber

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/juristech/legara/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CaseCounter{}))
	return db
}

func TestGormStoreInsertIfAbsentIsIdempotent(t *testing.T) {
	db := newStoreTestDB(t)
	store := NewGormStore(db, clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	key := CounterKey(2024, "ACME", 1, 2, false)
	require.NoError(t, store.InsertIfAbsent(ctx, key, 2024, 41))
	// The second insert must not reset the stored sequence.
	require.NoError(t, store.InsertIfAbsent(ctx, key, 2024, 0))

	seq, err := store.IncrementAndGet(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)
}

func TestGormStoreIncrementAndGet(t *testing.T) {
	db := newStoreTestDB(t)
	store := NewGormStore(db, clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	key := CounterKey(2024, "ACME", 1, 2, false)
	require.NoError(t, store.InsertIfAbsent(ctx, key, 2024, 0))

	for want := int64(1); want <= 3; want++ {
		seq, err := store.IncrementAndGet(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}
}

func TestGormStoreIncrementMissingCounter(t *testing.T) {
	db := newStoreTestDB(t)
	store := NewGormStore(db, clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	_, err := store.IncrementAndGet(context.Background(), CounterKey(2024, "NONE", 9, 9, false))
	assert.ErrorIs(t, err, ErrCounterMissing)
}

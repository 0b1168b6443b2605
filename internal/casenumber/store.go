package casenumber

import (
	"context"
	"errors"

	"github.com/juristech/legara/internal/clock"
	pkgdb "github.com/juristech/legara/pkg/db"
	"gorm.io/gorm"
)

var (
	// ErrCounterMissing means IncrementAndGet ran against a partition that
	// was never seeded. Callers must InsertIfAbsent first.
	ErrCounterMissing = errors.New("case counter missing")
)

// Store is the persistent atomic-counter capability the allocator needs.
// IncrementAndGet must be linearizable across all callers sharing a key;
// InsertIfAbsent must be a no-op when the key already exists, even under
// two concurrent seeders.
type Store interface {
	InsertIfAbsent(ctx context.Context, key string, year int, initial int64) error
	IncrementAndGet(ctx context.Context, key string) (int64, error)
}

type gormStore struct {
	db    *gorm.DB
	clock clock.Clock
}

func NewGormStore(db *gorm.DB, clk clock.Clock) Store {
	return &gormStore{db: db, clock: clk}
}

func (s *gormStore) InsertIfAbsent(ctx context.Context, key string, year int, initial int64) error {
	now := s.clock.Now()
	err := s.db.WithContext(ctx).Exec(
		`INSERT INTO case_counters (counter_key, sequence, year, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (counter_key) DO NOTHING`,
		key,
		initial,
		year,
		now,
		now,
	).Error
	if pkgdb.IsDuplicateKeyErr(err) {
		// A racing seeder won; ours is a no-op.
		return nil
	}
	return err
}

func (s *gormStore) IncrementAndGet(ctx context.Context, key string) (int64, error) {
	var rows []struct {
		Sequence int64
	}
	err := s.db.WithContext(ctx).Raw(
		`UPDATE case_counters
		 SET sequence = sequence + 1, updated_at = ?
		 WHERE counter_key = ?
		 RETURNING sequence`,
		s.clock.Now(),
		key,
	).Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, ErrCounterMissing
	}
	return rows[0].Sequence, nil
}

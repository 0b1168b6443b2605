package casenumber

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// CaseLookup answers the two read-side questions the allocator asks of the
// case store: the highest sequence already in use for a partition, and
// whether an exact number exists anywhere.
type CaseLookup interface {
	HighestSequence(ctx context.Context, pattern string) (int64, error)
	NumberExists(ctx context.Context, number string, excludeID snowflake.ID) (bool, error)
}

type gormCaseLookup struct {
	db *gorm.DB
}

func NewGormCaseLookup(db *gorm.DB) CaseLookup {
	return &gormCaseLookup{db: db}
}

func (l *gormCaseLookup) HighestSequence(ctx context.Context, pattern string) (int64, error) {
	// Length-first ordering keeps widened (>9999) sequences ahead of
	// zero-padded ones, which plain lexical order would not.
	var rows []struct {
		Number string
	}
	err := l.db.WithContext(ctx).Raw(
		`SELECT number
		 FROM case_files
		 WHERE number LIKE ?
		 ORDER BY LENGTH(number) DESC, number DESC
		 LIMIT 1`,
		pattern,
	).Scan(&rows).Error
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return ParseSequenceSuffix(rows[0].Number), nil
}

func (l *gormCaseLookup) NumberExists(ctx context.Context, number string, excludeID snowflake.ID) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Raw(
		`SELECT COUNT(1)
		 FROM case_files
		 WHERE number = ? AND id <> ?`,
		number,
		excludeID,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

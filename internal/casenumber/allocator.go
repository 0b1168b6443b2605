package casenumber

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// MaxAllocationRetries bounds the increment-format-verify loop. Collisions
// only happen when the counter and case data have diverged (bad reseed,
// out-of-band import); exhausting the budget falls back to a timestamp
// identifier instead of failing case creation.
const MaxAllocationRetries = 5

// Request identifies the partition a number is drawn from.
type Request struct {
	FirmID       snowflake.ID
	DepartmentID snowflake.ID
	Escalated    bool

	// ExcludeCaseID is set when re-numbering an existing case so the
	// uniqueness check does not trip over the record itself.
	ExcludeCaseID snowflake.ID
}

type Params struct {
	fx.In

	Store    Store
	Lookup   CaseLookup
	Metadata Metadata
	Clock    clock.Clock
	Log      *zap.Logger
	Metrics  *metrics.AllocationMetrics `optional:"true"`
}

// Allocator issues unique, human-readable case numbers. Sequential
// numbering is best effort; uniqueness is not.
type Allocator struct {
	store    Store
	lookup   CaseLookup
	metadata Metadata
	clock    clock.Clock
	log      *zap.Logger
	metrics  *metrics.AllocationMetrics
}

func NewAllocator(p Params) *Allocator {
	return &Allocator{
		store:    p.Store,
		lookup:   p.Lookup,
		metadata: p.Metadata,
		clock:    p.Clock,
		log:      p.Log.Named("casenumber"),
		metrics:  p.Metrics,
	}
}

// Allocate produces the next case number for the request's partition.
//
// The only linearizable step is the store's fetch-and-add; seeding uses
// insert-if-absent so a racing second seeder is a no-op. A missing firm or
// department degrades to a fallback identifier. Store failures during the
// increment propagate: case creation must fail rather than proceed with a
// guessed number.
func (a *Allocator) Allocate(ctx context.Context, req Request) (string, error) {
	ref, err := a.metadata.Resolve(ctx, req.FirmID, req.DepartmentID)
	if err != nil {
		if errors.Is(err, ErrMetadataNotFound) {
			a.log.Debug("numbering metadata missing, using fallback",
				zap.Int64("firm_id", int64(req.FirmID)),
				zap.Int64("department_id", int64(req.DepartmentID)),
			)
			return a.fallback(), nil
		}
		return "", err
	}

	year := a.clock.Now().UTC().Year()
	key := CounterKey(year, ref.FirmPrefix, req.FirmID, req.DepartmentID, req.Escalated)

	for attempt := 1; attempt <= MaxAllocationRetries; attempt++ {
		seq, err := a.nextSequence(ctx, key, year, ref, req.Escalated)
		if err != nil {
			return "", err
		}

		number := FormatNumber(ref.FirmPrefix, ref.DepartmentCode, year, seq, req.Escalated)

		taken, err := a.lookup.NumberExists(ctx, number, req.ExcludeCaseID)
		if err != nil {
			return "", err
		}
		if !taken {
			if a.metrics != nil {
				a.metrics.Allocated.Inc()
			}
			return number, nil
		}

		if a.metrics != nil {
			a.metrics.Retried.Inc()
		}
		a.log.Debug("case number collision, retrying",
			zap.String("number", number),
			zap.Int("attempt", attempt),
		)
	}

	a.log.Warn("case number allocation exhausted retries, using fallback",
		zap.String("counter_key", key),
		zap.Int("attempts", MaxAllocationRetries),
	)
	return a.fallback(), nil
}

// nextSequence draws from the partition counter, lazily seeding it on
// first use from the highest number already persisted. Seeding tolerates
// pre-existing data, reset counter stores and concurrent seeders: a racing
// insert-if-absent is a no-op, and both racers re-run the increment.
func (a *Allocator) nextSequence(ctx context.Context, key string, year int, ref Ref, escalated bool) (int64, error) {
	seq, err := a.store.IncrementAndGet(ctx, key)
	if err == nil {
		return seq, nil
	}
	if !errors.Is(err, ErrCounterMissing) {
		return 0, err
	}

	pattern := SeedPattern(ref.FirmPrefix, ref.DepartmentCode, year, escalated)
	highest, err := a.lookup.HighestSequence(ctx, pattern)
	if err != nil {
		return 0, err
	}
	if err := a.store.InsertIfAbsent(ctx, key, year, highest); err != nil {
		return 0, err
	}
	if a.metrics != nil {
		a.metrics.SeededKeys.Inc()
	}

	return a.store.IncrementAndGet(ctx, key)
}

func (a *Allocator) fallback() string {
	if a.metrics != nil {
		a.metrics.Fallbacks.Inc()
	}
	return FallbackNumber(a.clock.Now())
}

// Package scheduler runs the periodic background jobs: today that is
// the overdue-case digest, sent once per run interval per firm.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/config"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	"github.com/juristech/legara/internal/notification"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	Firms    firmdomain.Repository
	Cases    casefiledomain.Service
	Policy   *config.CollectionsPolicyHolder
	Notifier *notification.Notifier
	Clock    clock.Clock
	Log      *zap.Logger
	Config   Config `optional:"true"`
}

type Scheduler struct {
	firms    firmdomain.Repository
	cases    casefiledomain.Service
	policy   *config.CollectionsPolicyHolder
	notifier *notification.Notifier
	clock    clock.Clock
	log      *zap.Logger
	cfg      Config
}

func New(p Params) (*Scheduler, error) {
	if p.Firms == nil || p.Cases == nil || p.Policy == nil || p.Notifier == nil || p.Clock == nil || p.Log == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		firms:    p.Firms,
		cases:    p.Cases,
		policy:   p.Policy,
		notifier: p.Notifier,
		clock:    p.Clock,
		log:      p.Log.Named("scheduler"),
		cfg:      p.Config.withDefaults(),
	}, nil
}

func (s *Scheduler) runJob(parent context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.JobTimeout)
	defer cancel()

	start := s.clock.Now()
	err := fn(ctx)
	s.log.Debug("job finished",
		zap.String("job", name),
		zap.Duration("elapsed", s.clock.Now().Sub(start)),
		zap.Error(err),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	return s.runJob(parent, "overdue_digest", s.OverdueDigestJob)
}

// OverdueDigestJob notifies each firm about cases that have aged into
// the final bucket of the collections policy.
func (s *Scheduler) OverdueDigestJob(ctx context.Context) error {
	firms, err := s.firms.List(ctx)
	if err != nil {
		return err
	}
	overdueAfter := s.policy.Get().OverdueAfterDays()

	var errs error
	for i := range firms {
		firm := &firms[i]
		aging, err := s.cases.Aging(ctx, firm.ID)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("firm %s: %w", firm.ID, err))
			continue
		}

		var overdue []casefiledomain.CaseAging
		for _, entry := range aging {
			if entry.DaysOverdue >= overdueAfter {
				overdue = append(overdue, entry)
			}
		}
		s.notifier.OverdueDigest(ctx, firm, overdue)
	}
	return errs
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

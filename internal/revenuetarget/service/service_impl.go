package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/revenuetarget/decompose"
	"github.com/juristech/legara/internal/revenuetarget/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	minYear = 2020
	maxYear = 2100
)

type Params struct {
	fx.In

	Repo  domain.Repository
	GenID *snowflake.Node
	Clock clock.Clock
	Log   *zap.Logger
}

type service struct {
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

func NewService(p Params) domain.Service {
	return &service{
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
		log:   p.Log.Named("revenuetarget.service"),
	}
}

// Set stores the yearly target for a firm or department scope and
// recomputes the full monthly breakdown. Setting the same scope twice
// replaces the previous breakdown.
func (s *service) Set(ctx context.Context, firmID snowflake.ID, req domain.SetTargetRequest) (*domain.RevenueTarget, error) {
	if req.YearlyTarget < 0 {
		return nil, domain.ErrInvalidTarget
	}
	if req.Year < minYear || req.Year > maxYear {
		return nil, domain.ErrInvalidYear
	}

	now := s.clock.Now()
	target := domain.RevenueTarget{
		ID:           s.genID.Generate(),
		FirmID:       firmID,
		DepartmentID: req.DepartmentID,
		Year:         req.Year,
		YearlyTarget: req.YearlyTarget,
		Months:       datatypes.NewJSONType(decompose.Year(req.YearlyTarget, req.Year)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Upsert(ctx, target); err != nil {
		return nil, err
	}

	s.log.Info("revenue target set",
		zap.String("firm_id", firmID.String()),
		zap.Int("year", req.Year),
		zap.Float64("yearly_target", req.YearlyTarget),
	)

	// Re-read so an upsert over an existing row returns the stored ID.
	return s.repo.Get(ctx, firmID, req.DepartmentID, req.Year)
}

func (s *service) Get(ctx context.Context, firmID, departmentID snowflake.ID, year int) (*domain.RevenueTarget, error) {
	return s.repo.Get(ctx, firmID, departmentID, year)
}

func (s *service) ListByFirmYear(ctx context.Context, firmID snowflake.ID, year int) ([]domain.RevenueTarget, error) {
	return s.repo.ListByFirmYear(ctx, firmID, year)
}

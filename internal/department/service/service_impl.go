package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/department/domain"
	pkgdb "github.com/juristech/legara/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{2,6}$`)

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
		log:   p.Log.Named("department.service"),
	}
}

func (s *service) Create(ctx context.Context, firmID snowflake.ID, req domain.CreateDepartmentRequest) (*domain.Department, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !codePattern.MatchString(code) {
		return nil, domain.ErrInvalidCode
	}

	now := s.clock.Now()
	dept := domain.Department{
		ID:        s.genID.Generate(),
		FirmID:    firmID,
		Name:      name,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrCodeTaken
		}
		return nil, err
	}

	s.log.Info("department created",
		zap.String("firm_id", firmID.String()),
		zap.String("code", dept.Code),
	)
	return &dept, nil
}

func (s *service) GetByID(ctx context.Context, firmID, id snowflake.ID) (*domain.Department, error) {
	return s.repo.GetByID(ctx, firmID, id)
}

func (s *service) ListByFirm(ctx context.Context, firmID snowflake.ID) ([]domain.Department, error) {
	return s.repo.ListByFirm(ctx, firmID)
}

package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/internal/casenumber"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/config"
	departmentdomain "github.com/juristech/legara/internal/department/domain"
	"github.com/juristech/legara/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var validStatuses = map[string]bool{
	domain.StatusOpen:       true,
	domain.StatusInProgress: true,
	domain.StatusSettled:    true,
	domain.StatusEscalated:  true,
	domain.StatusClosed:     true,
}

type Params struct {
	fx.In

	DB        *gorm.DB
	Repo      domain.Repository
	Depts     departmentdomain.Repository
	Allocator *casenumber.Allocator
	Policy    *config.CollectionsPolicyHolder
	GenID     *snowflake.Node
	Clock     clock.Clock
	Log       *zap.Logger
}

type service struct {
	db        *gorm.DB
	repo      domain.Repository
	depts     departmentdomain.Repository
	allocator *casenumber.Allocator
	policy    *config.CollectionsPolicyHolder
	genID     *snowflake.Node
	clock     clock.Clock
	log       *zap.Logger
}

func NewService(p Params) domain.Service {
	return &service{
		db:        p.DB,
		repo:      p.Repo,
		depts:     p.Depts,
		allocator: p.Allocator,
		policy:    p.Policy,
		genID:     p.GenID,
		clock:     p.Clock,
		log:       p.Log.Named("casefile.service"),
	}
}

func (s *service) Create(ctx context.Context, firmID snowflake.ID, req domain.CreateCaseRequest) (*domain.CaseFile, error) {
	caseType := strings.ToLower(strings.TrimSpace(req.Type))
	if caseType != domain.TypeCredit && caseType != domain.TypeLegal {
		return nil, domain.ErrInvalidType
	}
	if strings.TrimSpace(req.DebtorName) == "" {
		return nil, domain.ErrInvalidDebtor
	}
	if req.Principal <= 0 {
		return nil, domain.ErrInvalidPrincipal
	}

	if _, err := s.depts.GetByID(ctx, firmID, req.DepartmentID); err != nil {
		return nil, domain.ErrInvalidDepartment
	}

	number, err := s.allocator.Allocate(ctx, casenumber.Request{
		FirmID:       firmID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	openedAt := now
	if req.OpenedAt != nil {
		openedAt = req.OpenedAt.UTC()
	}

	metadata := datatypes.JSONMap(req.Metadata)
	if metadata == nil {
		metadata = datatypes.JSONMap{}
	}

	cf := domain.CaseFile{
		ID:           s.genID.Generate(),
		FirmID:       firmID,
		DepartmentID: req.DepartmentID,
		Number:       number,
		Type:         caseType,
		Status:       domain.StatusOpen,
		DebtorName:   strings.TrimSpace(req.DebtorName),
		DebtorEmail:  strings.TrimSpace(req.DebtorEmail),
		Principal:    req.Principal,
		OpenedAt:     openedAt,
		Metadata:     metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, cf); err != nil {
		return nil, err
	}

	s.log.Info("case opened",
		zap.String("firm_id", firmID.String()),
		zap.String("number", cf.Number),
		zap.String("type", cf.Type),
	)
	return &cf, nil
}

func (s *service) GetByID(ctx context.Context, firmID, id snowflake.ID) (*domain.CaseFile, error) {
	return s.repo.GetByID(ctx, firmID, id)
}

func (s *service) List(ctx context.Context, firmID snowflake.ID, req domain.ListCasesRequest) (*domain.ListCasesResponse, error) {
	limit := req.Page.PageSize
	if limit <= 0 {
		limit = 50
	}

	var afterID snowflake.ID
	if req.Page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(req.Page.PageToken)
		if err != nil {
			return nil, err
		}
		raw, err := strconv.ParseInt(cursor.ID, 10, 64)
		if err != nil {
			return nil, err
		}
		afterID = snowflake.ID(raw)
	}

	cases, err := s.repo.List(ctx, firmID, req.Filter, afterID, limit+1)
	if err != nil {
		return nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(cases, limit, func(cf *domain.CaseFile) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: cf.ID.String()})
		return token
	})
	if len(cases) > limit {
		cases = cases[:limit]
	}

	return &domain.ListCasesResponse{Cases: cases, PageInfo: pageInfo}, nil
}

func (s *service) UpdateStatus(ctx context.Context, firmID, id snowflake.ID, status string) (*domain.CaseFile, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !validStatuses[status] {
		return nil, domain.ErrInvalidStatus
	}
	// Escalation creates the successor case; it is not a plain status edit.
	if status == domain.StatusEscalated {
		return nil, domain.ErrInvalidTransition
	}

	cf, err := s.repo.GetByID(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if cf.Status == domain.StatusClosed && status != domain.StatusClosed {
		return nil, domain.ErrCaseClosed
	}

	now := s.clock.Now()
	if err := s.repo.UpdateStatus(ctx, firmID, id, status, now); err != nil {
		return nil, err
	}
	cf.Status = status
	cf.UpdatedAt = now
	return cf, nil
}

// Escalate turns an unresolved credit case into a legal matter. The
// original case keeps its number and moves to ESCALATED; the new legal
// case gets its own number from the escalated partition and points back
// through escalated_from.
func (s *service) Escalate(ctx context.Context, firmID, id snowflake.ID) (*domain.CaseFile, error) {
	orig, err := s.repo.GetByID(ctx, firmID, id)
	if err != nil {
		return nil, err
	}
	if orig.Type != domain.TypeCredit {
		return nil, domain.ErrNotEscalatable
	}
	switch orig.Status {
	case domain.StatusEscalated:
		return nil, domain.ErrAlreadyEscalated
	case domain.StatusClosed, domain.StatusSettled:
		return nil, domain.ErrCaseClosed
	}

	number, err := s.allocator.Allocate(ctx, casenumber.Request{
		FirmID:       firmID,
		DepartmentID: orig.DepartmentID,
		Escalated:    true,
	})
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	legal := domain.CaseFile{
		ID:            s.genID.Generate(),
		FirmID:        firmID,
		DepartmentID:  orig.DepartmentID,
		Number:        number,
		Type:          domain.TypeLegal,
		Status:        domain.StatusOpen,
		Escalated:     true,
		EscalatedFrom: orig.Number,
		DebtorName:    orig.DebtorName,
		DebtorEmail:   orig.DebtorEmail,
		Principal:     orig.Principal,
		OpenedAt:      now,
		Metadata:      orig.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Insert(ctx, legal); err != nil {
			return err
		}
		return repo.UpdateStatus(ctx, firmID, orig.ID, domain.StatusEscalated, now)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("case escalated",
		zap.String("firm_id", firmID.String()),
		zap.String("from", orig.Number),
		zap.String("to", legal.Number),
	)
	return &legal, nil
}

func (s *service) Aging(ctx context.Context, firmID snowflake.ID) ([]domain.CaseAging, error) {
	cases, err := s.repo.ListOpenByFirm(ctx, firmID)
	if err != nil {
		return nil, err
	}

	policy := s.policy.Get()
	now := s.clock.Now()

	aging := make([]domain.CaseAging, 0, len(cases))
	for _, cf := range cases {
		days := int(now.Sub(cf.OpenedAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		aging = append(aging, domain.CaseAging{
			Case:        cf,
			DaysOverdue: days,
			Bucket:      policy.BucketFor(days).Label,
			RiskLevel:   policy.RiskFor(cf.Principal, days).Level,
		})
	}
	return aging, nil
}

func (s *service) AgingSummary(ctx context.Context, firmID snowflake.ID) ([]domain.AgingBucketSummary, error) {
	aging, err := s.Aging(ctx, firmID)
	if err != nil {
		return nil, err
	}

	policy := s.policy.Get()
	summaries := make([]domain.AgingBucketSummary, len(policy.AgingBuckets))
	index := make(map[string]int, len(policy.AgingBuckets))
	for i, bucket := range policy.AgingBuckets {
		summaries[i] = domain.AgingBucketSummary{Label: bucket.Label}
		index[bucket.Label] = i
	}

	for _, entry := range aging {
		i, ok := index[entry.Bucket]
		if !ok {
			continue
		}
		summaries[i].Count++
		summaries[i].Principal += entry.Case.Principal
	}
	return summaries, nil
}

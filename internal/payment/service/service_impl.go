package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var validMethods = map[string]bool{
	domain.MethodBankTransfer: true,
	domain.MethodCard:         true,
	domain.MethodCash:         true,
	domain.MethodOther:        true,
}

type Params struct {
	fx.In

	Repo  domain.Repository
	Cases casefiledomain.Repository
	GenID *snowflake.Node
	Clock clock.Clock
	Log   *zap.Logger
}

type service struct {
	repo  domain.Repository
	cases casefiledomain.Repository
	genID *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

func NewService(p Params) domain.Service {
	return &service{
		repo:  p.Repo,
		cases: p.Cases,
		genID: p.GenID,
		clock: p.Clock,
		log:   p.Log.Named("payment.service"),
	}
}

func (s *service) Record(ctx context.Context, firmID snowflake.ID, req domain.RecordPaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	method := strings.ToLower(strings.TrimSpace(req.Method))
	if !validMethods[method] {
		return nil, domain.ErrInvalidMethod
	}

	// The case must exist and belong to the calling firm.
	cf, err := s.cases.GetByID(ctx, firmID, req.CaseID)
	if err != nil {
		return nil, err
	}
	if cf.Status == casefiledomain.StatusClosed {
		return nil, casefiledomain.ErrCaseClosed
	}

	now := s.clock.Now()
	receivedAt := now
	if req.ReceivedAt != nil {
		receivedAt = req.ReceivedAt.UTC()
	}

	payment := domain.Payment{
		ID:         s.genID.Generate(),
		FirmID:     firmID,
		CaseID:     req.CaseID,
		Amount:     req.Amount,
		Method:     method,
		Reference:  strings.TrimSpace(req.Reference),
		ReceivedAt: receivedAt,
		CreatedAt:  now,
	}

	if err := s.repo.Insert(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("payment recorded",
		zap.String("firm_id", firmID.String()),
		zap.String("case_number", cf.Number),
		zap.Float64("amount", payment.Amount),
	)
	return &payment, nil
}

func (s *service) ListByCase(ctx context.Context, firmID, caseID snowflake.ID) ([]domain.Payment, error) {
	return s.repo.ListByCase(ctx, firmID, caseID)
}

func (s *service) Balance(ctx context.Context, firmID, caseID snowflake.ID) (*domain.CaseBalance, error) {
	cf, err := s.cases.GetByID(ctx, firmID, caseID)
	if err != nil {
		return nil, err
	}

	paid, err := s.repo.SumByCase(ctx, firmID, caseID)
	if err != nil {
		return nil, err
	}

	return &domain.CaseBalance{
		CaseID:      caseID,
		Principal:   cf.Principal,
		Paid:        paid,
		Outstanding: cf.Principal - paid,
	}, nil
}

// MonthlyTotals aggregates in Go rather than SQL so the grouping
// behaves identically across the supported databases.
func (s *service) MonthlyTotals(ctx context.Context, firmID snowflake.ID, year int) ([]domain.MonthlyTotal, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	payments, err := s.repo.ListByFirmBetween(ctx, firmID, from, to)
	if err != nil {
		return nil, err
	}

	byMonth := map[int]float64{}
	for _, payment := range payments {
		byMonth[int(payment.ReceivedAt.UTC().Month())] += payment.Amount
	}

	totals := make([]domain.MonthlyTotal, 0, len(byMonth))
	for month, total := range byMonth {
		totals = append(totals, domain.MonthlyTotal{Year: year, Month: month, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Month < totals[j].Month })
	return totals, nil
}

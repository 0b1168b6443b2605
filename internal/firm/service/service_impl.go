package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/firm/domain"
	pkgdb "github.com/juristech/legara/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var prefixPattern = regexp.MustCompile(`^[A-Z0-9]{2,6}$`)

type Params struct {
	fx.In

	DB    *gorm.DB
	Repo  domain.Repository
	GenID *snowflake.Node
	Clock clock.Clock
	Log   *zap.Logger
}

type service struct {
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
	clock clock.Clock
	log   *zap.Logger
}

func NewService(p Params) domain.Service {
	return &service{
		db:    p.DB,
		repo:  p.Repo,
		genID: p.GenID,
		clock: p.Clock,
		log:   p.Log.Named("firm.service"),
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateFirmRequest) (*domain.Firm, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	prefix := strings.ToUpper(strings.TrimSpace(req.Prefix))
	if prefix == "" {
		prefix = DerivePrefix(name)
	}
	if !prefixPattern.MatchString(prefix) {
		return nil, domain.ErrInvalidPrefix
	}

	now := s.clock.Now()
	firm := domain.Firm{
		ID:           s.genID.Generate(),
		Name:         name,
		Prefix:       prefix,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Metadata:     datatypes.JSONMap{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, firm); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			return nil, domain.ErrPrefixTaken
		}
		return nil, err
	}

	s.log.Info("firm created",
		zap.String("firm_id", firm.ID.String()),
		zap.String("prefix", firm.Prefix),
	)
	return &firm, nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Firm, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByPrefix(ctx context.Context, prefix string) (*domain.Firm, error) {
	return s.repo.GetByPrefix(ctx, strings.ToUpper(strings.TrimSpace(prefix)))
}

func (s *service) List(ctx context.Context) ([]domain.Firm, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateFirmRequest) (*domain.Firm, error) {
	firm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		firm.Name = name
	}
	if email := strings.TrimSpace(req.ContactEmail); email != "" {
		firm.ContactEmail = email
	}
	firm.UpdatedAt = s.clock.Now()

	if err := s.repo.Update(ctx, *firm); err != nil {
		return nil, err
	}
	return firm, nil
}

// DerivePrefix builds a numbering prefix from a firm name. Slugging
// strips accents and punctuation first so "Müller & Partner" yields
// MULLER rather than an invalid token.
func DerivePrefix(name string) string {
	cleaned := strings.ToUpper(slug.Make(name))
	var b strings.Builder
	for _, r := range cleaned {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == 6 {
			break
		}
	}
	prefix := b.String()
	if len(prefix) < 2 {
		prefix = fmt.Sprintf("F%s", prefix)
	}
	if len(prefix) < 2 {
		prefix = "FM"
	}
	return prefix
}

package firm

import (
	"github.com/juristech/legara/internal/firm/repository"
	"github.com/juristech/legara/internal/firm/service"
	"go.uber.org/fx"
)

var Module = fx.Module("firm.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

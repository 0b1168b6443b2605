package casefile

import (
	"github.com/juristech/legara/internal/casefile/repository"
	"github.com/juristech/legara/internal/casefile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("casefile.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

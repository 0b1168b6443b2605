package revenuetarget

import (
	"github.com/juristech/legara/internal/revenuetarget/repository"
	"github.com/juristech/legara/internal/revenuetarget/service"
	"go.uber.org/fx"
)

var Module = fx.Module("revenuetarget.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

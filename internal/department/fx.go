package department

import (
	"github.com/juristech/legara/internal/department/repository"
	"github.com/juristech/legara/internal/department/service"
	"go.uber.org/fx"
)

var Module = fx.Module("department.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

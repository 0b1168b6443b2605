package payment

import (
	"github.com/juristech/legara/internal/payment/repository"
	"github.com/juristech/legara/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)

package providers

import (
	"github.com/juristech/legara/internal/providers/email"
	"github.com/juristech/legara/internal/providers/pdf"
	"github.com/juristech/legara/internal/providers/slack"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	slack.Module,
	pdf.Module,
)

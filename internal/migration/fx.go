package migration

import (
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/internal/casenumber"
	"github.com/juristech/legara/internal/config"
	departmentdomain "github.com/juristech/legara/internal/department/domain"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
	revenuedomain "github.com/juristech/legara/internal/revenuetarget/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The versioned SQL migrations target postgres. Other dialects
		// (sqlite for local work, mysql) derive the schema from the
		// models instead.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&firmdomain.Firm{},
				&departmentdomain.Department{},
				&casenumber.CaseCounter{},
				&casefiledomain.CaseFile{},
				&paymentdomain.Payment{},
				&revenuedomain.RevenueTarget{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)

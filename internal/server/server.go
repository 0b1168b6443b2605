package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/juristech/legara/internal/casefile"
	casefiledomain "github.com/juristech/legara/internal/casefile/domain"
	"github.com/juristech/legara/internal/casenumber"
	"github.com/juristech/legara/internal/config"
	"github.com/juristech/legara/internal/department"
	departmentdomain "github.com/juristech/legara/internal/department/domain"
	"github.com/juristech/legara/internal/firm"
	firmdomain "github.com/juristech/legara/internal/firm/domain"
	"github.com/juristech/legara/internal/notification"
	"github.com/juristech/legara/internal/observability"
	obsmiddleware "github.com/juristech/legara/internal/observability/logger"
	obsmetrics "github.com/juristech/legara/internal/observability/metrics"
	obstracing "github.com/juristech/legara/internal/observability/tracing"
	"github.com/juristech/legara/internal/payment"
	paymentdomain "github.com/juristech/legara/internal/payment/domain"
	"github.com/juristech/legara/internal/providers"
	"github.com/juristech/legara/internal/ratelimit"
	"github.com/juristech/legara/internal/report"
	"github.com/juristech/legara/internal/revenuetarget"
	revenuedomain "github.com/juristech/legara/internal/revenuetarget/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	firm.Module,
	department.Module,
	casenumber.Module,
	casefile.Module,
	payment.Module,
	revenuetarget.Module,
	providers.Module,
	notification.Module,
	report.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	genID         *snowflake.Node
	firmSvc       firmdomain.Service
	departmentSvc departmentdomain.Service
	caseSvc       casefiledomain.Service
	paymentSvc    paymentdomain.Service
	targetSvc     revenuedomain.Service
	reportSvc     report.Service
	notifier      *notification.Notifier
	intakeLimiter *ratelimit.TokenBucket
	log           *zap.Logger
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	GenID         *snowflake.Node
	FirmSvc       firmdomain.Service
	DepartmentSvc departmentdomain.Service
	CaseSvc       casefiledomain.Service
	PaymentSvc    paymentdomain.Service
	TargetSvc     revenuedomain.Service
	ReportSvc     report.Service
	Notifier      *notification.Notifier `optional:"true"`
	IntakeLimiter *ratelimit.TokenBucket `optional:"true"`
	Log           *zap.Logger
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		genID:         p.GenID,
		firmSvc:       p.FirmSvc,
		departmentSvc: p.DepartmentSvc,
		caseSvc:       p.CaseSvc,
		paymentSvc:    p.PaymentSvc,
		targetSvc:     p.TargetSvc,
		reportSvc:     p.ReportSvc,
		notifier:      p.Notifier,
		intakeLimiter: p.IntakeLimiter,
		log:           p.Log.Named("server"),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.engine

	r.POST("/api/intake", s.intakeRateLimit(), s.createIntakeCase)

	api := r.Group("/api")
	{
		api.POST("/firms", s.createFirm)
		api.GET("/firms", s.listFirms)

		scoped := api.Group("", s.FirmContext())
		{
			scoped.GET("/firms/current", s.getFirm)
			scoped.PATCH("/firms/current", s.updateFirm)

			scoped.POST("/departments", s.createDepartment)
			scoped.GET("/departments", s.listDepartments)

			scoped.POST("/cases", s.createCase)
			scoped.GET("/cases", s.listCases)
			scoped.GET("/cases/:id", s.getCase)
			scoped.PATCH("/cases/:id/status", s.updateCaseStatus)
			scoped.POST("/cases/:id/escalate", s.escalateCase)

			scoped.POST("/payments", s.recordPayment)
			scoped.GET("/cases/:id/payments", s.listCasePayments)
			scoped.GET("/cases/:id/balance", s.caseBalance)

			scoped.PUT("/revenue-targets", s.setRevenueTarget)
			scoped.GET("/revenue-targets", s.listRevenueTargets)
			scoped.GET("/revenue-targets/progress", s.revenueReport)

			scoped.GET("/reports/aging", s.caseAging)
			scoped.GET("/reports/revenue", s.revenueReport)
			scoped.GET("/reports/revenue.pdf", s.revenueReportPDF)
			scoped.GET("/reports/aging.pdf", s.agingReportPDF)
		}
	}
}

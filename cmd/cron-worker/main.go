package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/venuebooks/venuebooks-backend/internal/billing"
	"github.com/venuebooks/venuebooks-backend/internal/cron"
	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/internal/plans"
	"github.com/venuebooks/venuebooks-backend/internal/settlement"
	"github.com/venuebooks/venuebooks-backend/pkg/config"
	"github.com/venuebooks/venuebooks-backend/pkg/db"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/metrics"
	"github.com/venuebooks/venuebooks-backend/pkg/migrate"
	"github.com/venuebooks/venuebooks-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gormDB := dbClient.DB()
	ledgerRepo := ledger.NewRepository(gormDB)

	settlementSvc, err := settlement.NewService(settlement.ServiceParams{
		Repo:   settlement.NewRepository(gormDB),
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create settlement service", err)
		os.Exit(1)
	}

	billingSvc, err := billing.NewService(billing.ServiceParams{
		Repo:       billing.NewRepository(gormDB),
		LedgerRepo: ledgerRepo,
		Settlement: settlementSvc,
		Tx:         dbClient,
		Pricing:    cfg.Pricing.Tariff(),
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create billing service", err)
		os.Exit(1)
	}

	ledgerSvc, err := ledger.NewService(ledger.ServiceParams{
		Repo:    ledgerRepo,
		Records: billingSvc,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	plansSvc, err := plans.NewService(plans.ServiceParams{
		Repo:       plans.NewRepository(gormDB),
		LedgerRepo: ledgerRepo,
		Tx:         dbClient,
		Logger:     logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create plans service", err)
		os.Exit(1)
	}

	jobMetrics := metrics.NewJobMetrics(prometheus.DefaultRegisterer)

	accrualJob, err := cron.NewAccrualJob(plansSvc, jobMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create accrual job", err)
		os.Exit(1)
	}
	integrityJob, err := cron.NewIntegrityJob(ledgerSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create integrity job", err)
		os.Exit(1)
	}

	lock, err := cron.NewRedisLock(redisClient, redisClient.WorkerLockKey("accrual"), cfg.Accrual.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: cron.NewRegistry(accrualJob, integrityJob),
		Lock:     lock,
		Metrics:  jobMetrics,
		Interval: cfg.Accrual.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

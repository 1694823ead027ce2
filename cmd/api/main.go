package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/venuebooks/venuebooks-backend/api/controllers"
	"github.com/venuebooks/venuebooks-backend/api/routes"
	"github.com/venuebooks/venuebooks-backend/internal/billing"
	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/internal/loans"
	"github.com/venuebooks/venuebooks-backend/internal/partners"
	"github.com/venuebooks/venuebooks-backend/internal/plans"
	"github.com/venuebooks/venuebooks-backend/internal/settlement"
	"github.com/venuebooks/venuebooks-backend/internal/snapshot"
	"github.com/venuebooks/venuebooks-backend/pkg/config"
	"github.com/venuebooks/venuebooks-backend/pkg/db"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/migrate"
	"github.com/venuebooks/venuebooks-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	svcs, err := buildServices(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to wire services", err)
		os.Exit(1)
	}

	readiness := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, readiness, svcs),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "api server shutdown failed", err)
			os.Exit(1)
		}
		logg.Info(ctx, "api server shut down gracefully")
	}
}

// buildServices wires repositories and services in dependency order. The
// billing service doubles as the closed-record source for ledger analytics
// and period snapshots.
func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (routes.Services, error) {
	gormDB := dbClient.DB()

	ledgerRepo := ledger.NewRepository(gormDB)
	billingRepo := billing.NewRepository(gormDB)
	settlementRepo := settlement.NewRepository(gormDB)
	snapshotRepo := snapshot.NewRepository(gormDB)
	loansRepo := loans.NewRepository(gormDB)
	plansRepo := plans.NewRepository(gormDB)
	partnersRepo := partners.NewRepository(gormDB)

	settlementSvc, err := settlement.NewService(settlement.ServiceParams{
		Repo:   settlementRepo,
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	billingSvc, err := billing.NewService(billing.ServiceParams{
		Repo:       billingRepo,
		LedgerRepo: ledgerRepo,
		Settlement: settlementSvc,
		Tx:         dbClient,
		Pricing:    cfg.Pricing.Tariff(),
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	ledgerSvc, err := ledger.NewService(ledger.ServiceParams{
		Repo:    ledgerRepo,
		Records: billingSvc,
		Logger:  logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	roster, err := partners.NewRoster(cfg.Partners.Roster)
	if err != nil {
		return routes.Services{}, err
	}

	snapshotSvc, err := snapshot.NewService(snapshot.ServiceParams{
		Repo:       snapshotRepo,
		LedgerRepo: ledgerRepo,
		Records:    billingSvc,
		Roster:     roster,
		Pricing:    cfg.Pricing.Tariff(),
		Tx:         dbClient,
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	loansSvc, err := loans.NewService(loans.ServiceParams{
		Repo:   loansRepo,
		Ledger: ledgerSvc,
		Tx:     dbClient,
		Logger: logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	plansSvc, err := plans.NewService(plans.ServiceParams{
		Repo:       plansRepo,
		LedgerRepo: ledgerRepo,
		Tx:         dbClient,
		Logger:     logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	partnersSvc, err := partners.NewService(partners.ServiceParams{
		Roster:    roster,
		Repo:      partnersRepo,
		Ledger:    ledgerSvc,
		Snapshots: snapshotRepo,
		Plans:     plansRepo,
		Logger:    logg,
	})
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Ledger:     ledgerSvc,
		Billing:    billingSvc,
		Settlement: settlementSvc,
		Snapshot:   snapshotSvc,
		Loans:      loansSvc,
		Plans:      plansSvc,
		Partners:   partnersSvc,
	}, nil
}

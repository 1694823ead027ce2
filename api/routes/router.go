package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/venuebooks/venuebooks-backend/api/controllers"
	"github.com/venuebooks/venuebooks-backend/api/middleware"
	"github.com/venuebooks/venuebooks-backend/internal/billing"
	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/internal/loans"
	"github.com/venuebooks/venuebooks-backend/internal/partners"
	"github.com/venuebooks/venuebooks-backend/internal/plans"
	"github.com/venuebooks/venuebooks-backend/internal/settlement"
	"github.com/venuebooks/venuebooks-backend/internal/snapshot"
	"github.com/venuebooks/venuebooks-backend/pkg/config"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/redis"
)

// Services bundles everything the HTTP surface depends on.
type Services struct {
	Ledger     ledger.Service
	Billing    billing.Service
	Settlement settlement.Service
	Snapshot   snapshot.Service
	Loans      loans.Service
	Plans      plans.Service
	Partners   partners.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	readiness map[string]controllers.Pinger,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(redisClient, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/treasury", func(r chi.Router) {
			r.Get("/", controllers.TreasuryOverview(svcs.Ledger, logg))
			r.Get("/integrity", controllers.TreasuryIntegrity(svcs.Ledger, logg))
			r.Post("/accounts", controllers.BankAccountCreate(svcs.Ledger, logg))
		})

		r.Route("/entries", func(r chi.Router) {
			r.Get("/", controllers.ListEntries(svcs.Ledger, logg))
			r.Post("/", controllers.AppendEntry(svcs.Ledger, logg))
			r.Post("/batch", controllers.AppendEntryBatch(svcs.Ledger, logg))
			r.Get("/stats", controllers.EntryStats(svcs.Ledger, logg))
			r.Get("/totals", controllers.EntryTotals(svcs.Ledger, logg))
			r.Get("/costs", controllers.CostAnalysis(svcs.Ledger, logg))
			r.Get("/cycle-preview", controllers.CyclePreview(svcs.Ledger, logg))
			r.Get("/lock", controllers.CurrentLock(svcs.Ledger, logg))
			r.Get("/feed", controllers.EntryFeed(svcs.Partners, logg))
			r.Get("/expenses", controllers.ExpenseOverview(svcs.Partners, logg))
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", controllers.SessionList(svcs.Billing, logg))
			r.Post("/", controllers.SessionOpen(svcs.Billing, logg))
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", controllers.SessionDetail(svcs.Billing, logg))
				r.Post("/switch", controllers.SessionSwitchDevice(svcs.Billing, logg))
				r.Post("/orders", controllers.SessionAddOrder(svcs.Billing, logg))
				r.Post("/close", controllers.SessionClose(svcs.Billing, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(svcs.Settlement, logg))
			r.Post("/", controllers.CustomerCreate(svcs.Settlement, logg))
			r.Route("/{customerId}", func(r chi.Router) {
				r.Get("/", controllers.CustomerDetail(svcs.Settlement, logg))
				r.Post("/settle", controllers.CustomerSettle(svcs.Settlement, logg))
			})
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", controllers.SnapshotList(svcs.Snapshot, logg))
			r.Post("/close", controllers.SnapshotClose(svcs.Snapshot, logg))
			r.Post("/preview", controllers.SnapshotPreview(svcs.Snapshot, logg))
			r.Get("/{snapshotId}", controllers.SnapshotDetail(svcs.Snapshot, logg))
		})

		r.Route("/loans", func(r chi.Router) {
			r.Get("/", controllers.LoanList(svcs.Loans, logg))
			r.Post("/", controllers.LoanCreate(svcs.Loans, logg))
			r.Route("/{loanId}", func(r chi.Router) {
				r.Get("/", controllers.LoanDetail(svcs.Loans, logg))
				r.Post("/installments/{installmentId}/pay", controllers.LoanPayInstallment(svcs.Loans, logg))
			})
		})

		r.Route("/plans", func(r chi.Router) {
			r.Get("/", controllers.PlanList(svcs.Plans, logg))
			r.Post("/", controllers.PlanCreate(svcs.Plans, logg))
			r.Patch("/{planId}/active", controllers.PlanSetActive(svcs.Plans, logg))
		})

		r.Route("/partners", func(r chi.Router) {
			r.Get("/", controllers.PartnerList(svcs.Partners, logg))
			r.Post("/purchases", controllers.PurchaseCreate(svcs.Partners, logg))
			r.Get("/purchases", controllers.PurchaseList(svcs.Partners, logg))
			r.Route("/{partnerId}", func(r chi.Router) {
				r.Get("/ledger", controllers.PartnerLedger(svcs.Partners, logg))
				r.Get("/debts", controllers.PartnerDebts(svcs.Partners, logg))
				r.Get("/activity", controllers.PartnerActivity(svcs.Ledger, logg))
				r.Post("/withdrawals", controllers.WithdrawalCreate(svcs.Partners, logg))
			})
		})
	})

	return r
}

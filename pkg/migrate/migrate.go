package migrate

import (
	"context"
	"fmt"

	"github.com/venuebooks/venuebooks-backend/pkg/config"
	"github.com/venuebooks/venuebooks-backend/pkg/db"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

// schema lists every persisted model. Order matters for foreign keys.
func schema() []any {
	return []any{
		&models.Customer{},
		&models.BankAccount{},
		&models.LedgerEntry{},
		&models.SessionRecord{},
		&models.PlaceLoan{},
		&models.LoanInstallment{},
		&models.LoanPayment{},
		&models.SavingPlan{},
		&models.Purchase{},
		&models.DebtItem{},
		&models.InventorySnapshot{},
		&models.PeriodLock{},
	}
}

// Run applies the schema to the connected database.
func Run(ctx context.Context, client *db.Client) error {
	if err := client.DB().WithContext(ctx).AutoMigrate(schema()...); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// MaybeRunDev executes migrations automatically when the app is running in
// dev mode and the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env})
	logg.Info(ctx, "running schema migrations (dev auto-run)")

	if err := Run(ctx, client); err != nil {
		return err
	}

	logg.Info(ctx, "schema migrations completed")
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Partners     PartnersConfig
	Pricing      PricingConfig
	Accrual      AccrualConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Partners.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENUEBOOKS_APP_ENV" required:"true"`
	Port         string `envconfig:"VENUEBOOKS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VENUEBOOKS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENUEBOOKS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"VENUEBOOKS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"VENUEBOOKS_DB_DSN"`
	Driver string `envconfig:"VENUEBOOKS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VENUEBOOKS_DB_HOST"`
	LegacyPort     int    `envconfig:"VENUEBOOKS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENUEBOOKS_DB_USER"`
	LegacyPassword string `envconfig:"VENUEBOOKS_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENUEBOOKS_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENUEBOOKS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENUEBOOKS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENUEBOOKS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENUEBOOKS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENUEBOOKS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"VENUEBOOKS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VENUEBOOKS_REDIS_ADDR"`
	Password     string        `envconfig:"VENUEBOOKS_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENUEBOOKS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENUEBOOKS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENUEBOOKS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENUEBOOKS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENUEBOOKS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENUEBOOKS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// PartnerEntry is one member of the fixed profit-sharing roster.
type PartnerEntry struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

// PartnersConfig carries the venue's partner roster as a JSON document so
// deployments can swap rosters without a rebuild.
type PartnersConfig struct {
	Roster RosterSpec `envconfig:"VENUEBOOKS_PARTNERS" default:"[{\"id\":\"abu_khaled\",\"name\":\"Abu Khaled\",\"percent\":34},{\"id\":\"khaled\",\"name\":\"Khaled\",\"percent\":33},{\"id\":\"abdullah\",\"name\":\"Abdullah\",\"percent\":33}]"`
}

// RosterSpec decodes the roster JSON from the environment.
type RosterSpec []PartnerEntry

// Decode implements envconfig.Decoder.
func (r *RosterSpec) Decode(value string) error {
	var entries []PartnerEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		return fmt.Errorf("parsing partner roster: %w", err)
	}
	*r = entries
	return nil
}

func (p PartnersConfig) validate() error {
	if len(p.Roster) == 0 {
		return fmt.Errorf("partner roster must not be empty")
	}
	total := decimal.Zero
	seen := map[string]bool{}
	for _, entry := range p.Roster {
		if entry.ID == "" {
			return fmt.Errorf("partner roster entry missing id")
		}
		if seen[entry.ID] {
			return fmt.Errorf("duplicate partner id %q in roster", entry.ID)
		}
		seen[entry.ID] = true
		total = total.Add(entry.Percent)
	}
	if !total.Equal(decimal.NewFromInt(100)) {
		return fmt.Errorf("partner roster percents must sum to 100, got %s", total)
	}
	return nil
}

// PricingConfig is the default tariff applied to new sessions. Each closed
// record snapshots the values it was billed with, so changing these later
// never rewrites history.
type PricingConfig struct {
	LaptopRate      decimal.Decimal `envconfig:"VENUEBOOKS_PRICING_LAPTOP_RATE" default:"10"`
	MobileRate      decimal.Decimal `envconfig:"VENUEBOOKS_PRICING_MOBILE_RATE" default:"7"`
	LaptopPlaceCost decimal.Decimal `envconfig:"VENUEBOOKS_PRICING_LAPTOP_PLACE_COST" default:"2"`
	MobilePlaceCost decimal.Decimal `envconfig:"VENUEBOOKS_PRICING_MOBILE_PLACE_COST" default:"1.5"`
	DevPercent      decimal.Decimal `envconfig:"VENUEBOOKS_PRICING_DEV_PERCENT" default:"10"`
}

// Tariff materializes the configured pricing into the value type the
// billing engine consumes.
func (p PricingConfig) Tariff() types.Pricing {
	return types.Pricing{
		LaptopRate:      p.LaptopRate,
		MobileRate:      p.MobileRate,
		LaptopPlaceCost: p.LaptopPlaceCost,
		MobilePlaceCost: p.MobilePlaceCost,
		DevPercent:      p.DevPercent,
	}
}

type AccrualConfig struct {
	Interval time.Duration `envconfig:"VENUEBOOKS_ACCRUAL_INTERVAL" default:"24h"`
	LockTTL  time.Duration `envconfig:"VENUEBOOKS_ACCRUAL_LOCK_TTL" default:"25h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VENUEBOOKS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		db.DSN = "file:venuebooks.db?cache=shared"
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

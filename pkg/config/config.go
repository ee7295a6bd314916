package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Seed      SeedConfig
	Scheduler SchedulerConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"DEPOTOPS_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"DEPOTOPS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DEPOTOPS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig locates the local SQLite file the ledger document lives in.
// The whole dashboard state is one JSON document under DocumentKey;
// SessionKey holds the signed-in identity.
type StoreConfig struct {
	Path        string `envconfig:"DEPOTOPS_STORE_PATH" default:"depotops.db"`
	DocumentKey string `envconfig:"DEPOTOPS_STORE_DOCUMENT_KEY" default:"depotops.ledger.v1"`
	SessionKey  string `envconfig:"DEPOTOPS_STORE_SESSION_KEY" default:"depotops.session.v1"`

	MaxOpenConns    int           `envconfig:"DEPOTOPS_STORE_MAX_OPEN_CONNS" default:"1"`
	MaxIdleConns    int           `envconfig:"DEPOTOPS_STORE_MAX_IDLE_CONNS" default:"1"`
	ConnMaxLifetime time.Duration `envconfig:"DEPOTOPS_STORE_CONN_MAX_LIFETIME" default:"1h"`
}

func (s StoreConfig) validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("%s is required", EnvStorePath)
	}
	if strings.TrimSpace(s.DocumentKey) == "" {
		return fmt.Errorf("%s is required", EnvStoreDocumentKey)
	}
	return nil
}

// SeedConfig bounds the generated demo dataset.
type SeedConfig struct {
	Receipts   int   `envconfig:"DEPOTOPS_SEED_RECEIPTS" default:"24"`
	Dispatches int   `envconfig:"DEPOTOPS_SEED_DISPATCHES" default:"10"`
	Trips      int   `envconfig:"DEPOTOPS_SEED_TRIPS" default:"8"`
	RandSeed   int64 `envconfig:"DEPOTOPS_SEED_RAND_SEED" default:"0"`
}

// SchedulerConfig drives the periodic refresh and simulation ticks.
type SchedulerConfig struct {
	InventoryRefreshInterval time.Duration `envconfig:"DEPOTOPS_SCHEDULER_INVENTORY_REFRESH_INTERVAL" default:"30s"`
	TripTickInterval         time.Duration `envconfig:"DEPOTOPS_SCHEDULER_TRIP_TICK_INTERVAL" default:"60s"`
}

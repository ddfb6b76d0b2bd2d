package app

import (
	"errors"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv string `envconfig:"BREWSTOCK_ENV" default:"development"`

	DataDir       string `envconfig:"BREWSTOCK_DATA_DIR" default:"."`
	InventoryFile string `envconfig:"BREWSTOCK_INVENTORY_FILE" default:"inventory.txt"`
	SuppliersFile string `envconfig:"BREWSTOCK_SUPPLIERS_FILE" default:"suppliers.txt"`
	SalesFile     string `envconfig:"BREWSTOCK_SALES_FILE" default:"SalesReport.txt"`
	ReceiptsDir   string `envconfig:"BREWSTOCK_RECEIPTS_DIR" default:"Receipts"`

	// MetricsFile, when set, receives Prometheus text metrics after each command.
	MetricsFile string `envconfig:"BREWSTOCK_METRICS_FILE"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.DataDir == "" {
		return nil, errors.New("data directory must be provided")
	}
	return &cfg, nil
}

// Path resolves a store name against DataDir. Absolute names are kept.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

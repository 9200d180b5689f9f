package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the complete journal configuration.
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Prices  PricesConfig  `json:"prices" yaml:"prices"`
	Refresh RefreshConfig `json:"refresh" yaml:"refresh"`
	Alerts  AlertsConfig  `json:"alerts" yaml:"alerts"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// JournalConfig selects and locates the ledger store.
type JournalConfig struct {
	Type    string `json:"type" yaml:"type"` // "csv" or "sqlite"
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	Backups int    `json:"backups" yaml:"backups"` // CSV versions kept as <path>.vN
}

// PricesConfig configures the live price source.
type PricesConfig struct {
	Provider      string            `json:"provider" yaml:"provider"` // "yahoo", "finnhub" or "static"
	Suffix        string            `json:"suffix" yaml:"suffix"`     // e.g. ".NS"
	TTL           string            `json:"ttl" yaml:"ttl"`           // e.g. "5m"
	Timeout       string            `json:"timeout" yaml:"timeout"`
	RateLimit     int               `json:"rate_limit" yaml:"rate_limit"` // requests per second
	FinnhubAPIKey string            `json:"finnhub_api_key,omitempty" yaml:"finnhub_api_key,omitempty"`
	Static        map[string]string `json:"static,omitempty" yaml:"static,omitempty"`
}

// RefreshConfig controls the watch loop.
type RefreshConfig struct {
	Interval string `json:"interval" yaml:"interval"`
}

// AlertsConfig sets the near-level band.
type AlertsConfig struct {
	TolerancePct float64 `json:"tolerance_pct" yaml:"tolerance_pct"`
}

// RiskConfig holds the personal limits new trades are checked against.
// Zero disables a check.
type RiskConfig struct {
	Capital       float64 `json:"capital" yaml:"capital"`
	RiskPct       float64 `json:"risk_pct" yaml:"risk_pct"`         // per trade, for sizing
	MaxRiskPct    float64 `json:"max_risk_pct" yaml:"max_risk_pct"` // per trade, for warnings
	MinRR         float64 `json:"min_rr" yaml:"min_rr"`
	MaxOpenTrades int     `json:"max_open_trades" yaml:"max_open_trades"`
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
}

// LoadFromFile loads configuration from a file, YAML first then JSON.
// Unset fields keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads .env, then the config file if path is not empty, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths, JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() {
	if val := os.Getenv("TRADEJOURNAL_DATA_PATH"); val != "" {
		c.Journal.Path = val
	}
	if val := os.Getenv("TRADEJOURNAL_DB_PATH"); val != "" {
		c.Journal.DBPath = val
	}
	if val := os.Getenv("TRADEJOURNAL_JOURNAL_TYPE"); val != "" {
		c.Journal.Type = val
	}
	if val := os.Getenv("TRADEJOURNAL_PRICE_PROVIDER"); val != "" {
		c.Prices.Provider = val
	}
	if val := os.Getenv("TRADEJOURNAL_REFRESH_INTERVAL"); val != "" {
		c.Refresh.Interval = val
	}
	if val := os.Getenv("TRADEJOURNAL_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("FINNHUB_API_KEY"); val != "" {
		c.Prices.FinnhubAPIKey = val
	}
	if val := os.Getenv("TRADEJOURNAL_ALERT_TOLERANCE"); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.Alerts.TolerancePct = v
		}
	}
	if val := os.Getenv("TRADEJOURNAL_BACKUPS"); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.Journal.Backups = v
		}
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Journal.Type {
	case "csv":
		if c.Journal.Path == "" {
			return fmt.Errorf("journal.path required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Backups < 0 {
		return fmt.Errorf("journal.backups must not be negative")
	}

	switch c.Prices.Provider {
	case "yahoo", "static":
	case "finnhub":
		if c.Prices.FinnhubAPIKey == "" {
			return fmt.Errorf("prices.finnhub_api_key required for finnhub provider")
		}
	default:
		return fmt.Errorf("prices.provider must be 'yahoo', 'finnhub' or 'static'")
	}
	if _, err := c.PriceTTL(); err != nil {
		return fmt.Errorf("prices.ttl: %w", err)
	}
	if _, err := c.PriceTimeout(); err != nil {
		return fmt.Errorf("prices.timeout: %w", err)
	}
	if c.Prices.RateLimit < 0 {
		return fmt.Errorf("prices.rate_limit must not be negative")
	}
	if _, err := c.StaticPrices(); err != nil {
		return err
	}

	if d, err := c.RefreshInterval(); err != nil {
		return fmt.Errorf("refresh.interval: %w", err)
	} else if d < time.Second {
		return fmt.Errorf("refresh.interval must be at least 1s")
	}

	if c.Alerts.TolerancePct <= 0 || c.Alerts.TolerancePct > 100 {
		return fmt.Errorf("alerts.tolerance_pct must be between 0 and 100")
	}

	if c.Risk.Capital < 0 {
		return fmt.Errorf("risk.capital must not be negative")
	}
	if c.Risk.RiskPct < 0 || c.Risk.RiskPct > 1 {
		return fmt.Errorf("risk.risk_pct must be between 0 and 1")
	}
	if c.Risk.MaxRiskPct < 0 || c.Risk.MaxRiskPct > 1 {
		return fmt.Errorf("risk.max_risk_pct must be between 0 and 1")
	}
	if c.Risk.MinRR < 0 || c.Risk.MaxOpenTrades < 0 {
		return fmt.Errorf("risk.min_rr and risk.max_open_trades must not be negative")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error")
	}
	return nil
}

// JournalPath is the file the configured backend writes.
func (c *Config) JournalPath() string {
	if c.Journal.Type == "sqlite" {
		return c.Journal.DBPath
	}
	return c.Journal.Path
}

func (c *Config) PriceTTL() (time.Duration, error) {
	return parseDuration(c.Prices.TTL)
}

func (c *Config) PriceTimeout() (time.Duration, error) {
	return parseDuration(c.Prices.Timeout)
}

func (c *Config) RefreshInterval() (time.Duration, error) {
	return parseDuration(c.Refresh.Interval)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// StaticPrices parses prices.static.
func (c *Config) StaticPrices() (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(c.Prices.Static))
	for sym, v := range c.Prices.Static {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("prices.static.%s: not a number: %q", sym, v)
		}
		out[strings.ToUpper(sym)] = d
	}
	return out, nil
}

// TolerancePct returns the alert band as a decimal.
func (c *Config) TolerancePct() decimal.Decimal {
	return decimal.NewFromFloat(c.Alerts.TolerancePct)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type:    "csv",
			Path:    filepath.Join("data", "trades.csv"),
			DBPath:  filepath.Join("data", "trades.db"),
			Backups: 1,
		},
		Prices: PricesConfig{
			Provider:  "yahoo",
			Suffix:    ".NS",
			TTL:       "5m",
			Timeout:   "10s",
			RateLimit: 5,
		},
		Refresh: RefreshConfig{
			Interval: "60s",
		},
		Alerts: AlertsConfig{
			TolerancePct: 2.0,
		},
		Risk: RiskConfig{
			RiskPct:    0.01,
			MaxRiskPct: 0.02,
			MinRR:      1.5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

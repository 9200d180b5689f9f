package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "csv", cfg.Journal.Type)
	assert.Equal(t, filepath.Join("data", "trades.csv"), cfg.JournalPath())
	assert.Equal(t, ".NS", cfg.Prices.Suffix)
	assert.Equal(t, 2.0, cfg.Alerts.TolerancePct)
	assert.Equal(t, 1, cfg.Journal.Backups)
	assert.NoError(t, cfg.Validate())

	d, err := cfg.RefreshInterval()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, d)

	ttl, err := cfg.PriceTTL()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown journal type",
			mutate:  func(c *Config) { c.Journal.Type = "parquet" },
			wantErr: true,
			errMsg:  "journal.type must be 'csv' or 'sqlite'",
		},
		{
			name:    "csv without path",
			mutate:  func(c *Config) { c.Journal.Path = "" },
			wantErr: true,
			errMsg:  "journal.path required",
		},
		{
			name:    "sqlite without db path",
			mutate:  func(c *Config) { c.Journal.Type = "sqlite"; c.Journal.DBPath = "" },
			wantErr: true,
			errMsg:  "journal.db_path required",
		},
		{
			name:    "finnhub without key",
			mutate:  func(c *Config) { c.Prices.Provider = "finnhub" },
			wantErr: true,
			errMsg:  "finnhub_api_key required",
		},
		{
			name:    "bad ttl",
			mutate:  func(c *Config) { c.Prices.TTL = "soon" },
			wantErr: true,
			errMsg:  "prices.ttl",
		},
		{
			name:    "refresh too fast",
			mutate:  func(c *Config) { c.Refresh.Interval = "10ms" },
			wantErr: true,
			errMsg:  "refresh.interval must be at least 1s",
		},
		{
			name:    "zero tolerance",
			mutate:  func(c *Config) { c.Alerts.TolerancePct = 0 },
			wantErr: true,
			errMsg:  "alerts.tolerance_pct",
		},
		{
			name:    "bad static price",
			mutate:  func(c *Config) { c.Prices.Static = map[string]string{"tcs": "abc"} },
			wantErr: true,
			errMsg:  "prices.static.tcs",
		},
		{
			name:    "risk pct above one",
			mutate:  func(c *Config) { c.Risk.RiskPct = 1.5 },
			wantErr: true,
			errMsg:  "risk.risk_pct must be between 0 and 1",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: true,
			errMsg:  "logging.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.Backups = 3
			cfg.Prices.Static = map[string]string{"TCS": "3500.50"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			err := cfg.SaveToFile(path)
			require.NoError(t, err)

			_, err = os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal:\n  type: sqlite\n  db_path: /tmp/j.db\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "/tmp/j.db", cfg.JournalPath())
	assert.Equal(t, "yahoo", cfg.Prices.Provider)
	assert.Equal(t, "60s", cfg.Refresh.Interval)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal: [unclosed"), 0o644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TRADEJOURNAL_DATA_PATH", "/srv/journal/trades.csv")
	t.Setenv("TRADEJOURNAL_LOG_LEVEL", "debug")
	t.Setenv("FINNHUB_API_KEY", "k123")
	t.Setenv("TRADEJOURNAL_ALERT_TOLERANCE", "1.5")
	t.Setenv("TRADEJOURNAL_BACKUPS", "not-a-number")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/journal/trades.csv", cfg.Journal.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "k123", cfg.Prices.FinnhubAPIKey)
	assert.Equal(t, 1.5, cfg.Alerts.TolerancePct)
	assert.Equal(t, 1, cfg.Journal.Backups)
}

func TestStaticPrices(t *testing.T) {
	cfg := Default()
	cfg.Prices.Static = map[string]string{"tcs": " 3500.5 "}

	prices, err := cfg.StaticPrices()
	require.NoError(t, err)
	assert.Equal(t, "3500.5", prices["TCS"].String())
	assert.Equal(t, "2", cfg.TolerancePct().String())
}

package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A personal trading journal with live PnL",
	Long: `Tradejournal keeps a ledger of stock trades in a CSV file (or SQLite),
refreshes live prices for open positions and reports realized and unrealized
profit and loss.

It provides tools for:
  - Listing and filtering trades with live prices and near-target alerts
  - Adding, editing and deleting trades from flags or an interactive form
  - Watching the dashboard refresh on an interval
  - Sizing new positions against a risk budget
  - Exporting trades as org-mode blocks

Configuration is read from --config, a .env file and TRADEJOURNAL_* variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var (
	cfgFile  string
	logLevel string

	cfg    *config.Config
	logger = zerolog.Nop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// setup loads config and builds the logger before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	cfg = c
	logger = logging.New(cfg.Logging.Level)
	logger.Debug().Str("config", cfgFile).Str("journal", cfg.JournalPath()).Msg("config loaded")
	return nil
}

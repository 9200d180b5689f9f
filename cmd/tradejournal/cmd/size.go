package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/dashboard"
	"github.com/rustyeddy/tradejournal/risk"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a position from entry, stop and risk budget",
	Long: `Compute how many shares to buy so that hitting the stop loses at most
capital * risk_pct. Capital and risk_pct default to the risk section of the
config.

Example:
  tradejournal size --entry 3500 --sl 3420 --t1 3650`,
	Args: cobra.NoArgs,
	RunE: runSize,
}

var (
	sizeEntry   string
	sizeStop    string
	sizeTarget  string
	sizeCapital float64
	sizeRiskPct float64
)

func init() {
	rootCmd.AddCommand(sizeCmd)
	sizeCmd.Flags().StringVarP(&sizeEntry, "entry", "e", "", "entry price (required)")
	sizeCmd.Flags().StringVar(&sizeStop, "sl", "", "stop loss (required)")
	sizeCmd.Flags().StringVar(&sizeTarget, "t1", "", "target, for R:R")
	sizeCmd.Flags().Float64Var(&sizeCapital, "capital", 0, "capital (default risk.capital)")
	sizeCmd.Flags().Float64Var(&sizeRiskPct, "risk-pct", 0, "risk per trade as a fraction, 0.01 = 1% (default risk.risk_pct)")
	sizeCmd.MarkFlagRequired("entry")
	sizeCmd.MarkFlagRequired("sl")
}

func runSize(cmd *cobra.Command, args []string) error {
	entry, err := parsePrice(sizeEntry)
	if err != nil {
		return fmt.Errorf("--entry: %w", err)
	}
	stop, err := parsePrice(sizeStop)
	if err != nil {
		return fmt.Errorf("--sl: %w", err)
	}
	target, err := parsePrice(sizeTarget)
	if err != nil {
		return fmt.Errorf("--t1: %w", err)
	}

	capital := cfg.Risk.Capital
	if sizeCapital > 0 {
		capital = sizeCapital
	}
	riskPct := cfg.Risk.RiskPct
	if sizeRiskPct > 0 {
		riskPct = sizeRiskPct
	}
	if capital <= 0 {
		return fmt.Errorf("capital must be positive: pass --capital or set risk.capital")
	}

	res := risk.Calculate(risk.Inputs{
		Capital: decimal.NewFromFloat(capital),
		RiskPct: decimal.NewFromFloat(riskPct),
		Entry:   entry,
		Stop:    stop,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Shares:         %d\n", res.Shares)
	fmt.Fprintf(out, "Cost:           %s\n", dashboard.Money(res.Cost))
	fmt.Fprintf(out, "Risk budget:    %s\n", dashboard.Money(res.RiskAmount))
	fmt.Fprintf(out, "Risk per share: %s\n", dashboard.Money(res.RiskPerShare))
	if rr := risk.RR(entry, stop, target); !rr.IsZero() {
		fmt.Fprintf(out, "R:R:            %s\n", rr.StringFixed(2))
	}
	return nil
}

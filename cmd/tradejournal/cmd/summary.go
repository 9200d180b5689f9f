package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/dashboard"
	"github.com/rustyeddy/tradejournal/filter"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print open, closed and total PnL",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var summaryNoPrices bool

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolVar(&summaryNoPrices, "no-prices", false, "skip live price lookups")
}

func runSummary(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	v, err := buildView(cmd.Context(), svc, filter.Criteria{Status: filter.All}, !summaryNoPrices, dashboard.State{})
	if err != nil {
		return err
	}

	open, closed := 0, 0
	for _, r := range v.Rows {
		switch {
		case r.Trade.IsOpen():
			open++
		case r.Trade.IsClosed():
			closed++
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Trades:     %d (%d open, %d closed)\n", v.Total, open, closed)
	fmt.Fprintf(out, "Open PnL:   %s\n", dashboard.Money(v.Summary.Open))
	fmt.Fprintf(out, "Closed PnL: %s\n", dashboard.Money(v.Summary.Closed))
	fmt.Fprintf(out, "Total PnL:  %s\n", dashboard.Money(v.Summary.Total))
	if v.Summary.Partial {
		fmt.Fprintf(out, "No price for: %v\n", v.Summary.Unpriced)
	}
	for _, line := range dashboard.AlertLines(v.Rows) {
		fmt.Fprintf(out, "⚠ %s\n", line)
	}
	return nil
}

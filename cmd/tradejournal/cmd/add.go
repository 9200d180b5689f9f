package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a trade to the journal",
	Long: `Append a new trade. Values come from flags, or from an interactive form
with -i.

Examples:
  tradejournal add --stock TCS --entry 3500 --t1 3650 --sl 3420 --qty 10
  tradejournal add -i`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var (
	addFields      tradeFields
	addInteractive bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	addFields.register(addCmd.Flags())
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "fill in the trade with a form")
}

func runAdd(cmd *cobra.Command, args []string) error {
	t := newTrade(time.Now())
	if err := addFields.apply(cmd.Flags(), &t); err != nil {
		return err
	}
	if addInteractive {
		var err error
		if t, err = promptTrade("New trade", t); err != nil {
			return err
		}
	}

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	added, err := svc.Add(t)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Added %s (%s)\n", added, added.ID)
	warnRisk(cmd, svc, added)
	return nil
}

// warnRisk prints advisory policy violations for a newly opened trade.
func warnRisk(cmd *cobra.Command, svc *journal.Service, t journal.TradeRecord) {
	if !t.IsOpen() {
		return
	}
	l, _, err := svc.Load()
	if err != nil {
		return
	}
	open := 0
	for _, other := range l.Trades() {
		if other.IsOpen() && other.ID != t.ID {
			open++
		}
	}

	d := risk.Evaluate(riskPolicy(), t, open)
	out := cmd.OutOrStdout()
	if !d.PlannedRR.IsZero() {
		fmt.Fprintf(out, "  R:R %s, planned risk %s\n", d.PlannedRR.StringFixed(2), d.PlannedRisk.StringFixed(2))
	}
	for _, v := range d.Violations {
		fmt.Fprintf(out, "  ⚠ %s\n", v)
	}
}

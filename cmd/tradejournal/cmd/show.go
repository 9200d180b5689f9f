package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
)

var showCmd = &cobra.Command{
	Use:   "show [trade-id]",
	Short: "Print trades as org-mode blocks",
	Long: `Print one trade, or every trade matching the filter flags, as org-mode
headings with a PROPERTIES drawer.

Examples:
  tradejournal show 01HQ3K4Z...
  tradejournal show --status closed --from 2024-01-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var showFilter filterFlags

func init() {
	rootCmd.AddCommand(showCmd)
	showFilter.register(showCmd, false)
}

func runShow(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		rec, err := svc.Get(args[0])
		if err != nil {
			return fmt.Errorf("get trade: %w", err)
		}
		fmt.Fprintln(out, journal.FormatTradeOrg(rec))
		return nil
	}

	c, err := showFilter.criteria()
	if err != nil {
		return err
	}
	l, _, err := svc.Load()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, journal.FormatTradesOrg(filter.Apply(l.Trades(), c)))
	return nil
}

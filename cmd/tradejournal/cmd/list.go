package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/dashboard"
	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pnl"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the dashboard: PnL summary, trades and alerts",
	Long: `List trades with live prices for open positions, the PnL summary and
near-target alerts. Filters narrow the table; the summary always covers the
whole journal.

Examples:
  tradejournal list
  tradejournal list --status open --stock tcs
  tradejournal list --from 2024-01-01 --to 2024-03-31`,
	Args: cobra.NoArgs,
	RunE: runList,
}

type filterFlags struct {
	From     string
	To       string
	Stock    string
	Status   string
	NoPrices bool
}

var listFilter filterFlags

func (f *filterFlags) register(cmd *cobra.Command, prices bool) {
	cmd.Flags().StringVar(&f.From, "from", "", "first trade date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.To, "to", "", "last trade date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.Stock, "stock", "", "ticker substring, any case")
	cmd.Flags().StringVar(&f.Status, "status", "all", "all, open or closed")
	if prices {
		cmd.Flags().BoolVar(&f.NoPrices, "no-prices", false, "skip live price lookups")
	}
}

func (f filterFlags) criteria() (filter.Criteria, error) {
	var (
		c   filter.Criteria
		err error
	)
	if f.From != "" {
		if c.From, err = journal.ParseDate(f.From); err != nil {
			return c, fmt.Errorf("--from: %w", err)
		}
	}
	if f.To != "" {
		if c.To, err = journal.ParseDate(f.To); err != nil {
			return c, fmt.Errorf("--to: %w", err)
		}
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.To.Before(c.From) {
		return c, fmt.Errorf("--to %s is before --from %s", f.To, f.From)
	}
	if c.Status, err = filter.ParseStatus(f.Status); err != nil {
		return c, err
	}
	c.Symbol = f.Stock
	return c, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listFilter.register(listCmd, true)
}

// buildView loads the journal and prices it once.
func buildView(ctx context.Context, svc *journal.Service, c filter.Criteria, withPrices bool, st dashboard.State) (dashboard.View, error) {
	l, rep, err := svc.Load()
	if err != nil {
		return dashboard.View{}, err
	}

	var lookup pnl.LookupFunc
	if withPrices {
		cache, err := priceCache()
		if err != nil {
			return dashboard.View{}, err
		}
		lookup = cache.LookupContext(ctx)
	}

	return dashboard.Build(dashboard.Input{
		Trades:       l.Trades(),
		Report:       rep,
		Criteria:     c,
		Lookup:       lookup,
		TolerancePct: cfg.TolerancePct(),
		State:        st,
		Now:          time.Now(),
	}), nil
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := listFilter.criteria()
	if err != nil {
		return err
	}

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	v, err := buildView(cmd.Context(), svc, c, !listFilter.NoPrices, dashboard.State{})
	if err != nil {
		return err
	}
	return dashboard.Render(cmd.OutOrStdout(), v)
}

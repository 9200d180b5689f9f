package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/dashboard"
	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Redraw the dashboard on an interval until interrupted",
	Long: `Watch reloads the journal and refreshes prices every refresh.interval
(default 60s) and redraws the dashboard. Stop it with Ctrl-C.

Examples:
  tradejournal watch
  tradejournal watch --interval 30s --status open`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchFilter   filterFlags
	watchInterval time.Duration
	watchNoClear  bool
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchFilter.register(watchCmd, true)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "refresh interval (default from config)")
	watchCmd.Flags().BoolVar(&watchNoClear, "no-clear", false, "do not clear the screen between frames")
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := watchFilter.criteria()
	if err != nil {
		return err
	}

	interval := watchInterval
	if interval <= 0 {
		if interval, err = cfg.RefreshInterval(); err != nil {
			return err
		}
	}

	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Dur("interval", interval).Msg("watching journal")
	return watch(ctx, interval, func(ctx context.Context) error {
		return drawFrame(ctx, cmd.OutOrStdout(), svc, c)
	})
}

// watch calls draw now and then on every tick until ctx is done. A failed
// frame is logged and the loop carries on.
func watch(ctx context.Context, interval time.Duration, draw func(context.Context) error) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := draw(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Error().Err(err).Msg("refresh failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func drawFrame(ctx context.Context, w io.Writer, svc *journal.Service, c filter.Criteria) error {
	v, err := buildView(ctx, svc, c, !watchFilter.NoPrices, dashboard.State{})
	if err != nil {
		return err
	}
	if !watchNoClear {
		fmt.Fprint(w, "\033[2J\033[H")
	}
	return dashboard.Render(w, v)
}

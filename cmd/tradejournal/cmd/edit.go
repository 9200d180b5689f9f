package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Edit a trade",
	Long: `Replace fields of an existing trade. Only the flags you pass change;
with -i the form opens prefilled with the current values.

Examples:
  tradejournal edit 01HQ3K4Z... --status closed --exit 3660
  tradejournal edit 01HQ3K4Z... -i`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editFields      tradeFields
	editInteractive bool
)

func init() {
	rootCmd.AddCommand(editCmd)
	editFields.register(editCmd.Flags())
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "edit the trade with a form")
}

func runEdit(cmd *cobra.Command, args []string) error {
	svc, err := openService()
	if err != nil {
		return err
	}
	defer svc.Close()

	tradeID := args[0]
	t, err := svc.Get(tradeID)
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	if err := editFields.apply(cmd.Flags(), &t); err != nil {
		return err
	}
	if editInteractive {
		if t, err = promptTrade("Edit trade "+tradeID, t); err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Edit cancelled.")
			return err
		}
	}

	updated, err := svc.Update(tradeID, t)
	if err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated %s (%s)\n", updated, updated.ID)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <trade-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a trade",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

var deleteYes bool

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
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

	if !deleteYes {
		ok := false
		prompt := &survey.Confirm{Message: fmt.Sprintf("Delete %s?", t)}
		if err := survey.AskOne(prompt, &ok); err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted.")
			return nil
		}
	}

	if err := svc.Delete(tradeID); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", t)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset progression and reward data",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			fmt.Println("This wipes XP, streak and reward history. Re-run with --yes to confirm.")
			return nil
		}

		svc, err := buildServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		svc.prog.Reset()
		svc.ledger.Reset()

		if all, _ := cmd.Flags().GetBool("all"); all {
			svc.store.Clear()
			fmt.Println("All data cleared, including the content cache.")
			return nil
		}

		fmt.Println("Progression and reward data cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
	resetCmd.Flags().Bool("all", false, "Also clear the cached content")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show progression and reward stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		state := svc.prog.GetState()
		summary := svc.ledger.GetSummary()

		fmt.Printf("Level:        %d\n", state.Level)
		fmt.Printf("XP:           %.0f (%.0f to next level)\n", state.XP, state.XPToNextLevel)
		fmt.Printf("Streak:       %d day(s)\n", state.Streak)
		if state.LastDaily != "" {
			fmt.Printf("Last daily:   %s\n", state.LastDaily)
		}
		fmt.Printf("Balance:      %.4f REAL (%.4f per XP)\n", summary.TotalTokens, summary.ConversionRate)

		if len(state.QuestCompletions) > 0 {
			fmt.Println("\nQuest completions:")
			for id, count := range state.QuestCompletions {
				fmt.Printf("  %-24s %d\n", id, count)
			}
		}
		return nil
	},
}

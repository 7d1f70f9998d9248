package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var questsCmd = &cobra.Command{
	Use:   "quests",
	Short: "List available quests",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		payload, err := svc.repo.LoadLanguage(cmd.Context(), svc.cfg.DefaultLanguage)
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		completions := svc.prog.GetState().QuestCompletions
		for _, q := range payload.Quests {
			done := ""
			if n := completions[q.ID]; n > 0 {
				done = fmt.Sprintf("  (completed %d)", n)
			}
			fmt.Printf("%-24s %-32s +%.0f XP%s\n", q.ID, q.Title, q.RewardPoints, done)
			if q.Summary != "" {
				fmt.Printf("%24s %s\n", "", q.Summary)
			}
		}
		return nil
	},
}

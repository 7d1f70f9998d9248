package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/realtoken/questline/internal/progression"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Show today's daily challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := buildServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if _, err := svc.repo.LoadLanguage(cmd.Context(), svc.cfg.DefaultLanguage); err != nil {
			return fmt.Errorf("load content: %w", err)
		}

		now := time.Now()
		challenge := svc.repo.DailyChallenge(svc.cfg.DefaultLanguage, now)
		if challenge == nil {
			fmt.Println("No daily challenge configured for today.")
			return nil
		}

		state := svc.prog.GetState()
		fmt.Printf("Daily challenge: %s (+%.0f XP bonus)\n", challenge.Quest.Title, challenge.BonusPoints)
		if challenge.Quest.Summary != "" {
			fmt.Println(challenge.Quest.Summary)
		}
		if state.LastDaily == progression.DateKey(now) {
			fmt.Println("Already completed today. Streak:", state.Streak)
		} else if state.Streak > 0 {
			fmt.Printf("Current streak: %d day(s). Complete it to keep the chain going!\n", state.Streak)
		}
		return nil
	},
}

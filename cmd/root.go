package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "questline",
	Short: "Learning quests that earn REAL tokens",
	Long:  "Questline — terminal learning quests with XP, daily streaks and a REAL token reward ledger.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUESTLINE_DB)")
	rootCmd.PersistentFlags().String("lang", "", "Content language (overrides QUESTLINE_LANG)")
	rootCmd.PersistentFlags().String("content-url", "", "Content base URL (overrides QUESTLINE_CONTENT_URL)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(questsCmd)
	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

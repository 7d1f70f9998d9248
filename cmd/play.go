package cmd

import (
	"github.com/spf13/cobra"

	"github.com/realtoken/questline/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the quest TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp wires the service graph and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := buildServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	return app.Run(app.Options{
		Engine:      svc.engine,
		Progression: svc.prog,
		Ledger:      svc.ledger,
		Logger:      svc.log,
		Language:    svc.cfg.DefaultLanguage,
	})
}

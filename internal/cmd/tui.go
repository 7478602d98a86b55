package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nameclaim/nameclaim/internal/register"
	"github.com/nameclaim/nameclaim/internal/session"
	"github.com/nameclaim/nameclaim/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the interactive session",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	store, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; logs would corrupt the frame, so the model
	// gets a nop logger and persistence failures stay silent on screen.
	state := session.New(cfg.Registries)
	model := tui.New(
		state,
		newProbeSet(cfg),
		register.NewOrchestrator(),
		store,
		cfg.Token,
		nil,
	)
	return tui.Run(model)
}

package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	app "github.com/okian/salaryscope/internal/app"
	"github.com/okian/salaryscope/internal/domain/session"
	"github.com/okian/salaryscope/internal/tui"
)

func newExploreCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Explore the plot interactively in the terminal",
		Long: `Opens a full-screen explorer. Keys: [ and ] switch titles, / searches,
+ and - zoom, arrows pan, r resets the zoom, q quits. The mouse wheel zooms
at the pointer and hovering a marker shows its details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, snap := root.load(cmd.Context())
			machine := session.NewMachine(app.MachineOptionsFromConfig(root.cfg)...)
			m := tui.New(machine, snap.Samples, snap.Catalog, snap.Default)
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
			return err
		},
	}
}

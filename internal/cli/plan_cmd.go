package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/stainprep/stainprep/internal/cli/formatter"
)

func newPlanCmd(app *App) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the prep plan for the current worksheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				p := tea.NewProgram(newPlanViewModel(app), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}

			plan, err := app.Plans.Build(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatPrepPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open a scrollable plan viewer")

	return cmd
}

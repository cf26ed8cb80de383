package cli

import (
	"github.com/spf13/cobra"
	"github.com/stainprep/stainprep/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Reagents  service.ReagentService
	Worksheet service.WorksheetService
	Plans     service.PlanService
	Exports   service.ExportService

	// IsInteractive reports whether stdin is a terminal. Interactive-only
	// commands (forms, the plan viewer) refuse to run when it returns false.
	IsInteractive func() bool
}

// interactive defaults to true when the caller didn't wire a detector, which
// keeps tests simple.
func (a *App) interactive() bool {
	if a.IsInteractive == nil {
		return true
	}
	return a.IsInteractive()
}

// NewRootCmd creates the top-level "stainprep" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "stainprep",
		Short:         "Reagent prep calculator for Bond staining runs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReagentCmd(app),
		newSetupCmd(app),
		newAssignCmd(app),
		newPlanCmd(app),
		newExportCmd(app),
		newResetCmd(app),
	)

	return root
}

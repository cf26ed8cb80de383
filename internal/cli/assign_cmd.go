package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stainprep/stainprep/internal/cli/formatter"
	"github.com/stainprep/stainprep/internal/domain"
)

func newAssignCmd(app *App) *cobra.Command {
	var plexFlag int

	cmd := &cobra.Command{
		Use:   "assign [PLEX] [REAGENT...]",
		Short: "Assign primary antibodies to plexes",
		Long: `With no arguments, shows the current assignments.
With a plex (positional or --plex) and reagent names/IDs, replaces that
plex's primaries. With a plex alone on a terminal, opens a multi-select
picker.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			plex := plexFlag
			refs := args
			if !cmd.Flags().Changed("plex") {
				if len(args) == 0 {
					return showAssignments(ctx, app)
				}
				p, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid plex number %q", args[0])
				}
				plex = p
				refs = args[1:]
			}

			if len(refs) > 0 {
				ids := make([]string, 0, len(refs))
				for _, ref := range refs {
					id, err := resolveReagentID(ctx, app, ref)
					if err != nil {
						return err
					}
					ids = append(ids, id)
				}
				if err := app.Worksheet.AssignPlex(ctx, plex, ids); err != nil {
					return err
				}
				return showAssignments(ctx, app)
			}

			return assignInteractive(ctx, app, plex)
		},
	}

	cmd.Flags().IntVar(&plexFlag, "plex", 0, "Plex number to assign")

	return cmd
}

func assignInteractive(ctx context.Context, app *App, plex int) error {
	if !app.interactive() {
		return fmt.Errorf("interactive assignment requires a terminal (pass reagent names instead)")
	}

	primaries, err := app.Reagents.ListByType(ctx, domain.ReagentPrimary)
	if err != nil {
		return err
	}
	if len(primaries) == 0 {
		return fmt.Errorf("no primary antibodies on the worksheet")
	}

	current, err := app.Worksheet.AssignmentsForPlex(ctx, plex)
	if err != nil {
		return err
	}
	assigned := make(map[string]bool, len(current))
	var selected []string
	for _, a := range current {
		assigned[a.ReagentID] = true
		selected = append(selected, a.ReagentID)
	}

	if err := primaryMultiSelect(plex, primaries, assigned, &selected).Run(); err != nil {
		return err
	}

	if err := app.Worksheet.AssignPlex(ctx, plex, selected); err != nil {
		return err
	}
	return showAssignments(ctx, app)
}

func showAssignments(ctx context.Context, app *App) error {
	setup, err := app.Worksheet.Setup(ctx)
	if err != nil {
		return err
	}
	assignments, err := app.Worksheet.Assignments(ctx)
	if err != nil {
		return err
	}
	reagents, err := app.Reagents.List(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]*domain.Reagent, len(reagents))
	for _, r := range reagents {
		byID[r.ID] = r
	}

	fmt.Printf("%s\n", formatter.FormatAssignments(assignments, byID, setup.Plexes))
	return nil
}

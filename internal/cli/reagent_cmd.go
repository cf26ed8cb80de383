package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stainprep/stainprep/internal/cli/formatter"
	"github.com/stainprep/stainprep/internal/domain"
)

func newReagentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reagent",
		Short: "Manage the reagent worksheet",
	}

	cmd.AddCommand(
		newReagentAddCmd(app),
		newReagentListCmd(app),
		newReagentUpdateCmd(app),
		newReagentRemoveCmd(app),
	)

	return cmd
}

// reagentFlagValues collects the shared add/update flag set.
type reagentFlagValues struct {
	name     string
	typeStr  string
	stock    float64
	perSlide float64
	dead     float64
	slides   int
}

func registerReagentFlags(flags *pflag.FlagSet, v *reagentFlagValues) {
	flags.StringVar(&v.name, "name", "", "Reagent name (e.g. \"CD3 clone LN10\")")
	flags.StringVar(&v.typeStr, "type", "", "Reagent type (primary|secondary|polymer|amplifier|opal|dapi|other)")
	flags.Float64Var(&v.stock, "stock", 0, "Initial stock on hand (µL)")
	flags.Float64Var(&v.perSlide, "per-slide", 0, "Dispense volume per slide (µL)")
	flags.Float64Var(&v.dead, "dead", 0, "Dead volume override (µL, defaults to the run's)")
	flags.IntVar(&v.slides, "slides", 0, "Slide count override (defaults to the run's counts)")
}

// applyReagentFlags copies only the flags the user actually set onto r.
func applyReagentFlags(flags *pflag.FlagSet, v *reagentFlagValues, r *domain.Reagent) {
	if flags.Changed("name") {
		r.Name = v.name
	}
	if flags.Changed("type") {
		r.Type = domain.ReagentType(v.typeStr)
	}
	if flags.Changed("stock") {
		r.InitialStockUL = v.stock
	}
	if flags.Changed("per-slide") {
		r.VolumePerSlideUL = v.perSlide
	}
	if flags.Changed("dead") {
		dead := v.dead
		r.DeadVolumeUL = &dead
	}
	if flags.Changed("slides") {
		slides := v.slides
		r.SlidesOverride = &slides
	}
}

func newReagentAddCmd(app *App) *cobra.Command {
	var v reagentFlagValues

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a reagent to the worksheet",
		Long:  "With no flags on a terminal, opens an entry form. Otherwise --name, --type and --per-slide are required.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &domain.Reagent{}

			if cmd.Flags().NFlag() == 0 && app.interactive() {
				if err := fillReagentFromForm(r); err != nil {
					return err
				}
			} else {
				for _, name := range []string{"name", "type", "per-slide"} {
					if !cmd.Flags().Changed(name) {
						return fmt.Errorf("--%s is required", name)
					}
				}
				applyReagentFlags(cmd.Flags(), &v, r)
			}

			if err := app.Reagents.Add(context.Background(), r); err != nil {
				return err
			}

			fmt.Printf("Added %s (%s) [%s]\n", r.Name, r.Type, r.DisplayID())
			return nil
		},
	}

	registerReagentFlags(cmd.Flags(), &v)

	return cmd
}

func fillReagentFromForm(r *domain.Reagent) error {
	name := ""
	typeStr := string(domain.ReagentPrimary)
	stock := ""
	perSlide := ""
	dead := ""

	if err := reagentForm(&name, &typeStr, &stock, &perSlide, &dead).Run(); err != nil {
		return err
	}

	r.Name = name
	r.Type = domain.ReagentType(typeStr)
	if v, err := strconv.ParseFloat(stock, 64); err == nil {
		r.InitialStockUL = v
	}
	if v, err := strconv.ParseFloat(perSlide, 64); err == nil {
		r.VolumePerSlideUL = v
	}
	if v, err := strconv.ParseFloat(dead, 64); err == nil && v > 0 {
		r.DeadVolumeUL = &v
	}
	return nil
}

func newReagentListCmd(app *App) *cobra.Command {
	var typeStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List worksheet reagents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var reagents []*domain.Reagent
			var err error
			if typeStr != "" {
				reagents, err = app.Reagents.ListByType(ctx, domain.ReagentType(typeStr))
			} else {
				reagents, err = app.Reagents.List(ctx)
			}
			if err != nil {
				return err
			}

			if len(reagents) == 0 {
				fmt.Println("No reagents on the worksheet.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatReagentList(reagents))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeStr, "type", "", "Only show reagents of this type")

	return cmd
}

func newReagentUpdateCmd(app *App) *cobra.Command {
	var v reagentFlagValues

	cmd := &cobra.Command{
		Use:   "update REAGENT",
		Short: "Update a reagent (name, ID, or ID prefix)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveReagentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			r, err := app.Reagents.GetByID(ctx, id)
			if err != nil {
				return err
			}

			applyReagentFlags(cmd.Flags(), &v, r)

			if err := app.Reagents.Update(ctx, r); err != nil {
				return err
			}

			fmt.Printf("Updated %s [%s]\n", r.Name, r.DisplayID())
			return nil
		},
	}

	registerReagentFlags(cmd.Flags(), &v)

	return cmd
}

func newReagentRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove REAGENT",
		Short: "Remove a reagent from the worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveReagentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Reagents.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed reagent %s\n", id)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stainprep/stainprep/internal/cli/formatter"
	"github.com/stainprep/stainprep/internal/domain"
)

func newSetupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Show or change the run setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Worksheet.Setup(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatRunSetup(s))
			return nil
		},
	}

	cmd.AddCommand(
		newSetupUpdateCmd(app),
		newSetupEditCmd(app),
	)

	return cmd
}

func newSetupUpdateCmd(app *App) *cobra.Command {
	var instrument string
	var dead, threshold float64
	var plexes, testSlides, negControls int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change run setup fields by flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Worksheet.Setup(ctx)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("instrument") {
				s.Instrument = domain.InstrumentModel(instrument)
				// Switching instruments resets the dead volume to the
				// model default unless --dead is also given.
				if !cmd.Flags().Changed("dead") {
					s.DeadVolumeUL = s.Instrument.DefaultDeadVolumeUL()
				}
			}
			if cmd.Flags().Changed("dead") {
				s.DeadVolumeUL = dead
			}
			if cmd.Flags().Changed("plexes") {
				s.Plexes = plexes
			}
			if cmd.Flags().Changed("test-slides") {
				s.TestSlides = testSlides
			}
			if cmd.Flags().Changed("neg-controls") {
				s.NegControls = negControls
			}
			if cmd.Flags().Changed("threshold") {
				s.WarnThresholdUL = threshold
			}

			if err := app.Worksheet.SaveSetup(ctx, s); err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatRunSetup(s))
			return nil
		},
	}

	cmd.Flags().StringVar(&instrument, "instrument", "", "Instrument model (bond_rx|bond_iii)")
	cmd.Flags().Float64Var(&dead, "dead", 0, "Dead volume per reagent (µL)")
	cmd.Flags().IntVar(&plexes, "plexes", 0, "Number of plexes (1-8)")
	cmd.Flags().IntVar(&testSlides, "test-slides", 0, "Test slides per plex")
	cmd.Flags().IntVar(&negControls, "neg-controls", 0, "Negative control slides per plex")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Total-volume warning threshold (µL)")

	return cmd
}

func newSetupEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the run setup interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("setup edit requires an interactive terminal (use `setup update` with flags)")
			}

			ctx := context.Background()
			s, err := app.Worksheet.Setup(ctx)
			if err != nil {
				return err
			}

			instrument := string(s.Instrument)
			dead := ""
			plexes := strconv.Itoa(s.Plexes)
			testSlides := strconv.Itoa(s.TestSlides)
			negControls := strconv.Itoa(s.NegControls)
			threshold := strconv.FormatFloat(s.WarnThresholdUL, 'f', -1, 64)

			if err := setupForm(&instrument, &dead, &plexes, &testSlides, &negControls, &threshold).Run(); err != nil {
				return err
			}

			prev := s.Instrument
			s.Instrument = domain.InstrumentModel(instrument)
			if s.Instrument != prev {
				s.DeadVolumeUL = s.Instrument.DefaultDeadVolumeUL()
			}
			if v, err := strconv.ParseFloat(dead, 64); err == nil && v > 0 {
				s.DeadVolumeUL = v
			}
			s.Plexes = parsePositiveInt(plexes, s.Plexes)
			s.TestSlides = parseNonNegativeInt(testSlides, s.TestSlides)
			s.NegControls = parseNonNegativeInt(negControls, s.NegControls)
			if v, err := strconv.ParseFloat(threshold, 64); err == nil && v > 0 {
				s.WarnThresholdUL = v
			}

			if err := app.Worksheet.SaveSetup(ctx, s); err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatRunSetup(s))
			return nil
		},
	}
}

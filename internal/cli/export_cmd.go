package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stainprep/stainprep/internal/cli/formatter"
	"github.com/stainprep/stainprep/internal/domain"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the prep plan to CSV or Excel",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.ExportFormat(format)
			if !domain.ValidExportFormats[format] {
				return fmt.Errorf("unknown format %q (use csv or xlsx)", format)
			}

			if out == "" {
				out = "prep_plan." + format
			}

			file, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}

			plan, err := app.Exports.Export(context.Background(), f, file)
			if err != nil {
				file.Close()
				os.Remove(out)
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}

			fmt.Printf("Exported %d entries (%s total) to %s\n",
				plan.EntryCount(), formatter.FormatUL(plan.GrandTotalUL), out)
			if plan.OverThreshold {
				fmt.Printf("%s\n", formatter.StyleRed.Render(
					fmt.Sprintf("WARNING: total exceeds %s", formatter.FormatUL(plan.WarnThresholdUL))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format (csv|xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (default prep_plan.<format>)")

	return cmd
}

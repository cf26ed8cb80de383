package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the worksheet: reagents, setup, and assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to reset without --force on a non-interactive terminal")
				}
				confirmed := false
				if err := confirmForm("Discard the entire worksheet?", &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Reset cancelled.")
					return nil
				}
			}

			if err := app.Worksheet.Reset(context.Background()); err != nil {
				return err
			}

			fmt.Println("Worksheet cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip the confirmation prompt")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModelsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the configured model presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, model := range app.Config.ModelList {
				if i == 0 {
					fmt.Fprintf(out, "%s (default)\n", model)
					continue
				}
				fmt.Fprintln(out, model)
			}
			return nil
		},
	}
}

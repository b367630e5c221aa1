package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trekcalc/trekcalc/internal/export"
)

func newExportCommand(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the grid and totals as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exp, err := a.open(args)
			if err != nil {
				return err
			}
			if out == "" {
				out = strings.TrimSuffix(path, ".json") + ".csv"
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("creating %s: %w", out, err)
			}
			if err := export.Write(f, exp); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "CSV file to write (default: next to the expedition file)")

	return cmd
}

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trekcalc/trekcalc/internal/config"
	"github.com/trekcalc/trekcalc/internal/render"
)

func newRecentCommand(a *app) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened expedition files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if prune {
				for _, p := range a.settings.Prune(config.FileExists) {
					fmt.Fprintf(out, "Removed %s\n", p)
				}
				a.saveSettings()
			}
			if len(a.settings.RecentFiles) == 0 {
				fmt.Fprintln(out, "No recent files.")
				return nil
			}
			for i, p := range a.settings.RecentFiles {
				marker := ""
				if !config.FileExists(p) {
					marker = " (missing)"
				}
				fmt.Fprintf(out, "%d. %s%s\n", i+1, p, marker)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "forget files that no longer exist")

	return cmd
}

func newTreksCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "treks",
		Short: "List the trek catalog with default durations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range a.catalog.Names() {
				days := a.catalog.DurationFor(name, 0)
				fmt.Fprintf(tw, "%s\t%d\t%s\n", name, days, render.Duration(days))
			}
			return tw.Flush()
		},
	}
}

package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/trekcalc/trekcalc/internal/activitylog"
	"github.com/trekcalc/trekcalc/internal/expedition"
	"github.com/trekcalc/trekcalc/internal/tally"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the day grid with running totals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, exp, err := a.open(args)
			if err != nil {
				return err
			}
			r := a.renderer(cmd.OutOrStdout())
			r.Header(exp)
			fmt.Fprintln(cmd.OutOrStdout())
			return r.Grid(exp)
		},
	}
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Print end-of-trek statistics without changing the file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, exp, err := a.open(args)
			if err != nil {
				return err
			}
			return printStatistics(a, cmd, exp, exp.Statistics())
		},
	}
}

func newFinishCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "finish [file]",
		Short: "Normalize every cell, save, and print the statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exp, err := a.open(args)
			if err != nil {
				return err
			}
			report := exp.Finish()
			if err := a.save(path, exp); err != nil {
				return err
			}
			a.record(path, activitylog.NewEntry(activitylog.ActionFinish, 0, "", "shared fund "+report.SharedFund.String(), decimal.Zero))

			return printStatistics(a, cmd, exp, report)
		},
	}
}

func printStatistics(a *app, cmd *cobra.Command, exp *expedition.Expedition, report tally.Report) error {
	r := a.renderer(cmd.OutOrStdout())
	r.Header(exp)
	fmt.Fprintln(cmd.OutOrStdout())
	return r.Statistics(exp, report)
}

package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/trekcalc/trekcalc/internal/activitylog"
	"github.com/trekcalc/trekcalc/internal/expedition"
)

func newEditCommand(a *app) *cobra.Command {
	var (
		name  string
		start string
		days  int
	)

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Change the trek name, start date or number of days",
		Long: `Change the trek name, start date or number of days. The end date follows
the start date and the number of days.

The ledger is not resized when the number of days changes: a ledger that no
longer matches is started fresh the next time the file is opened.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("name") && !flags.Changed("start") && !flags.Changed("days") {
				return errors.New("nothing to change: pass --name, --start or --days")
			}
			path, exp, err := a.open(args)
			if err != nil {
				return err
			}

			var changes []string
			if flags.Changed("name") {
				exp.Name = strings.TrimSpace(name)
				changes = append(changes, "name="+exp.Name)
			}
			if flags.Changed("start") {
				startDate, err := parseDate(start)
				if err != nil {
					return err
				}
				exp.SetStartDate(startDate)
				changes = append(changes, "start="+startDate.Format(expedition.DateFormat))
			}
			if flags.Changed("days") {
				if err := exp.SetDurationDays(days); err != nil {
					return err
				}
				changes = append(changes, fmt.Sprintf("days=%d", days))
				if exp.Ledger.Days() != days {
					a.log.Warn("ledger no longer matches the number of days and will be started fresh when reopened",
						"path", path, "ledger_days", exp.Ledger.Days(), "days", days)
				}
			}

			if err := a.save(path, exp); err != nil {
				return err
			}
			a.record(path, activitylog.NewEntry(activitylog.ActionEdit, 0, "", strings.Join(changes, " "), decimal.Zero))

			a.renderer(cmd.OutOrStdout()).Header(exp)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new trek name")
	cmd.Flags().StringVar(&start, "start", "", "new start date")
	cmd.Flags().IntVar(&days, "days", 0, "new number of days")

	return cmd
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trekcalc/trekcalc/internal/activitylog"
	"github.com/trekcalc/trekcalc/internal/cell"
	"github.com/trekcalc/trekcalc/internal/expedition"
	"github.com/trekcalc/trekcalc/internal/model"
	"github.com/trekcalc/trekcalc/internal/tally"
)

// cellFlags are the flags that address one ledger cell.
type cellFlags struct {
	day         int
	participant string
}

func (f *cellFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.day, "day", 0, "day number, starting at 1 (required)")
	cmd.Flags().StringVar(&f.participant, "participant", "", "participant name or column number (required)")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("participant")
}

// resolve returns the zero-based day and column.
func (f *cellFlags) resolve(exp *expedition.Expedition) (int, int, error) {
	if f.day < 1 || f.day > exp.Ledger.Days() {
		return 0, 0, fmt.Errorf("day %d is outside 1..%d", f.day, exp.Ledger.Days())
	}
	col, err := exp.ParticipantIndex(f.participant)
	if err != nil {
		return 0, 0, err
	}
	return f.day - 1, col, nil
}

func newAddCommand(a *app) *cobra.Command {
	var (
		target   cellFlags
		category string
		amount   string
	)

	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Record an expense or a top-up in a cell",
		Long: `Record an expense or a top-up in a cell.

Meals (Завтрак, Ланч, Обед) are always recorded as expenses and Пополнение as a
top-up, whatever sign the amount has. The amount may be an arithmetic
expression such as "2*750"; anything that cannot be read counts as 0.`,
		Example: `  trekcalc add --day 1 --participant Аня --category Завтрак --amount 500`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			path, exp, err := a.open(args)
			if err != nil {
				return err
			}
			day, col, err := target.resolve(exp)
			if err != nil {
				return err
			}

			e, err := exp.AppendEntry(day, col, cat, cell.ParseAmount(amount), cat.Sign())
			if err != nil {
				return err
			}
			if err := a.save(path, exp); err != nil {
				return err
			}
			name := exp.People()[col].Name
			a.record(path, activitylog.NewEntry(activitylog.ActionAdd, target.day, name, cell.FormatEntry(e), e.Amount))

			return printCell(a, cmd, exp, day, col)
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&category, "category", "", "one of "+strings.Join(categoryNames(), ", ")+" (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount or arithmetic expression (required)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newSetCommand(a *app) *cobra.Command {
	var (
		target cellFlags
		text   string
	)

	cmd := &cobra.Command{
		Use:   "set [file]",
		Short: "Replace the text of a cell",
		Long: `Replace the text of a cell with entries written by hand, e.g.
"Завтрак -500; Пополнение +2000". Fragments that cannot be read are kept as
text and count as 0.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, exp, err := a.open(args)
			if err != nil {
				return err
			}
			day, col, err := target.resolve(exp)
			if err != nil {
				return err
			}

			before, err := exp.Ledger.Accumulator(day, col)
			if err != nil {
				return err
			}
			if err := exp.SetCell(day, col, text); err != nil {
				return err
			}
			after, err := exp.Ledger.Accumulator(day, col)
			if err != nil {
				return err
			}
			if err := a.save(path, exp); err != nil {
				return err
			}
			name := exp.People()[col].Name
			a.record(path, activitylog.NewEntry(activitylog.ActionSet, target.day, name, text, after.Sub(before)))

			return printCell(a, cmd, exp, day, col)
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&text, "text", "", `cell text, "0" for empty (required)`)
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func printCell(a *app, cmd *cobra.Command, exp *expedition.Expedition, day, col int) error {
	text, err := exp.Ledger.Cell(day, col)
	if err != nil {
		return err
	}
	total := tally.RunningTotal(exp.Participants, exp.Ledger, col)
	r := a.renderer(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "%s, %s: %s\n",
		exp.Date(day).Format(expedition.DisplayDateFormat), exp.People()[col].Name, text)
	fmt.Fprintf(cmd.OutOrStdout(), "Остаток: %s\n", r.Amount(total))
	for _, w := range exp.Totals().Warnings() {
		fmt.Fprintln(cmd.ErrOrStderr(), w)
	}
	return nil
}

func parseCategory(s string) (model.Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range model.Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", cell.ErrUnknownCategory, s, strings.Join(categoryNames(), ", "))
}

func categoryNames() []string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return names
}

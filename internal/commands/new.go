package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/trekcalc/trekcalc/internal/activitylog"
	"github.com/trekcalc/trekcalc/internal/catalog"
	"github.com/trekcalc/trekcalc/internal/expedition"
)

func newNewCommand(a *app) *cobra.Command {
	var (
		trek         string
		participants []string
		start        string
		days         int
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new expedition file",
		Example: `  trekcalc new --trek Лангтанг --participant "Аня=20000" --participant "Борис=15000"
  trekcalc new --trek "Вокруг Покхары" --days 4 --start 2025-04-02`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form, err := buildForm(a.catalog, trek, participants, start, days)
			if err != nil {
				return err
			}
			exp, err := expedition.New(form)
			if err != nil {
				return err
			}
			path, err := a.store.Create(outDir, exp)
			if err != nil {
				return fmt.Errorf("creating expedition: %w", err)
			}
			a.remember(path)
			a.record(path, activitylog.NewEntry(activitylog.ActionCreate, 0, "", exp.Name, decimal.Zero))

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			a.renderer(cmd.OutOrStdout()).Header(exp)
			return nil
		},
	}

	cmd.Flags().StringVar(&trek, "trek", catalog.Default()[0].Name, "trek name, from the catalog or free text")
	cmd.Flags().StringArrayVar(&participants, "participant", nil, `participant as "Name=contribution" (repeatable)`)
	cmd.Flags().StringVar(&start, "start", catalog.DefaultStartDate.Format(expedition.DateFormat), "start date")
	cmd.Flags().IntVar(&days, "days", 0, "number of days (default: the catalog duration)")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory to create the file in")

	return cmd
}

func buildForm(c *catalog.Catalog, trek string, participants []string, start string, days int) (expedition.Form, error) {
	form := expedition.Form{Name: strings.TrimSpace(trek)}

	if days == 0 {
		days = c.DurationFor(form.Name, 0)
		if days == 0 {
			return form, errors.New("--days is required for a trek outside the catalog")
		}
	}
	form.DurationDays = days

	startDate, err := parseDate(start)
	if err != nil {
		return form, err
	}
	form.StartDate = startDate

	if len(participants) == 0 {
		participants = []string{""}
	}
	for _, p := range participants {
		in, err := parseParticipant(p)
		if err != nil {
			return form, err
		}
		form.Participants = append(form.Participants, in)
	}
	return form, nil
}

// parseParticipant reads "Name=20000". A missing contribution means the
// default one.
func parseParticipant(s string) (expedition.ParticipantInput, error) {
	in := expedition.ParticipantInput{Contribution: decimal.NewFromInt(catalog.DefaultContribution)}
	name, amount, found := strings.Cut(s, "=")
	in.Name = strings.TrimSpace(name)
	if !found {
		return in, nil
	}
	amount = strings.ReplaceAll(strings.TrimSpace(amount), " ", "")
	v, err := decimal.NewFromString(amount)
	if err != nil {
		return in, fmt.Errorf("participant %q: invalid contribution %q", in.Name, amount)
	}
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(catalog.MaxContribution)) {
		return in, fmt.Errorf("participant %q: contribution must be between 0 and %d", in.Name, catalog.MaxContribution)
	}
	in.Contribution = v
	return in, nil
}

// parseDate accepts dd.MM.yyyy or any layout dateparse knows, and keeps only
// the calendar date.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(expedition.DisplayDateFormat, s); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

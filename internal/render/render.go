// Package render prints expeditions for the terminal: the day grid with its
// totals row, and the end-of-trek statistics.
package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/hako/durafmt"
	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/trekcalc/trekcalc/internal/expedition"
	"github.com/trekcalc/trekcalc/internal/export"
	"github.com/trekcalc/trekcalc/internal/model"
	"github.com/trekcalc/trekcalc/internal/tally"
)

// Options controls how output looks.
type Options struct {
	Currency string // ISO code
	Color    bool
}

// Renderer writes expeditions to w.
type Renderer struct {
	w       io.Writer
	money   *Money
	palette map[model.Tier]*color.Color
	title   *color.Color
}

// ColorEnabled reports whether colors should be used on f: the user wants
// them and f is a terminal.
func ColorEnabled(f *os.File, want bool) bool {
	return want && term.IsTerminal(int(f.Fd()))
}

// New creates a Renderer.
func New(w io.Writer, opts Options) *Renderer {
	r := &Renderer{
		w:     w,
		money: NewMoney(opts.Currency),
		palette: map[model.Tier]*color.Color{
			model.TierNormal:   color.New(color.FgGreen),
			model.TierWarning:  color.New(color.FgYellow),
			model.TierCritical: color.New(color.FgRed),
		},
		title: color.New(color.Bold),
	}
	for _, c := range append(r.colors(), r.title) {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *Renderer) colors() []*color.Color {
	return []*color.Color{
		r.palette[model.TierNormal],
		r.palette[model.TierWarning],
		r.palette[model.TierCritical],
	}
}

// Amount formats an amount followed by its unit, e.g. "19 500 рупий".
func (r *Renderer) Amount(amount decimal.Decimal) string {
	return r.money.Format(amount) + " " + r.money.Unit()
}

// Duration renders a trek length in days as a human duration, e.g. "1 week 3 days".
func Duration(days int) string {
	return durafmt.Parse(time.Duration(days) * 24 * time.Hour).String()
}

// Header prints the trek name, dates, participant count and duration.
func (r *Renderer) Header(exp *expedition.Expedition) {
	fmt.Fprintln(r.w, r.title.Sprint(exp.Name))
	fmt.Fprintf(r.w, "%s - %s\n",
		exp.StartDate.Format(expedition.DisplayDateFormat),
		exp.EndDate.Format(expedition.DisplayDateFormat))
	fmt.Fprintf(r.w, "Участников: %d, дней: %d (%s)\n",
		len(exp.People()), exp.DurationDays, Duration(exp.DurationDays))
}

// Grid prints one row per day, the totals row and any warnings.
func (r *Renderer) Grid(exp *expedition.Expedition) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	header := export.Header(exp)
	fmt.Fprintln(tw, strings.Join(header[:len(header)-1], "\t"))
	for d, row := range exp.Ledger.Rows() {
		fmt.Fprintf(tw, "%s\t%s\n", exp.Date(d).Format(expedition.DisplayDateFormat), strings.Join(row, "\t"))
	}

	totals := exp.Totals()
	cells := make([]string, 0, len(totals.Participants)+1)
	cells = append(cells, export.TotalsLabel)
	for _, t := range totals.Participants {
		cells = append(cells, r.money.Format(t.Total))
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("laying out grid: %w", err)
	}

	// Colors go in after layout so escape codes do not count towards widths.
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	last := len(lines) - 1
	tiers := make([]*color.Color, len(totals.Participants))
	for i, t := range totals.Participants {
		tiers[i] = r.palette[t.Tier]
	}
	lines[last] = colorize(lines[last], cells[1:], tiers)
	for _, line := range lines {
		fmt.Fprintln(r.w, strings.TrimRight(line, " "))
	}

	fmt.Fprintf(r.w, "%s: %s\n", model.SharedFundName, r.title.Sprint(r.Amount(totals.SharedFund)))
	for _, w := range totals.Warnings() {
		fmt.Fprintln(r.w, r.palette[model.TierCritical].Sprint(w))
	}
	return nil
}

// colorize wraps each token, found left to right in line, in its color.
func colorize(line string, tokens []string, colors []*color.Color) string {
	var b strings.Builder
	pos := 0
	for i, tok := range tokens {
		j := strings.Index(line[pos:], tok)
		if j < 0 {
			break
		}
		b.WriteString(line[pos : pos+j])
		b.WriteString(colors[i].Sprint(tok))
		pos += j + len(tok)
	}
	b.WriteString(line[pos:])
	return b.String()
}

// Statistics prints the end-of-trek report: one card per participant, then
// the group's spending per day.
func (r *Renderer) Statistics(exp *expedition.Expedition, report tally.Report) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	for _, s := range report.Participants {
		fmt.Fprintln(tw, r.title.Sprint(s.Name))
		fmt.Fprintf(tw, "  Внесено:\t%s\n", r.money.Format(s.Initial))
		fmt.Fprintf(tw, "  Всего расходов:\t%s\n", r.money.Format(s.TotalExpenses))
		fmt.Fprintf(tw, "  В среднем за день:\t%s\n", r.money.Format(s.DailyAverage))
		for _, c := range model.Categories {
			if amount, ok := s.ByCategory[c]; ok {
				fmt.Fprintf(tw, "  %s:\t%s\n", c, r.money.Format(amount))
			}
		}
		fmt.Fprintf(tw, "  Баланс:\t%s\n", r.money.Format(s.FinalBalance))
		fmt.Fprintf(tw, "  %s\n", r.settlementColor(s.Settlement).Sprint(s.Settlement.Message()))
		fmt.Fprintln(tw)
	}

	fmt.Fprintln(tw, r.title.Sprint("Расходы группы по дням"))
	for d, spend := range report.DailySpend {
		fmt.Fprintf(tw, "  %s\t%s\n", exp.Date(d).Format(expedition.DisplayDateFormat), r.money.Format(spend))
	}
	fmt.Fprintf(tw, "  %s\t%s\n", export.TotalsLabel, r.money.Format(report.TotalSpend))
	fmt.Fprintf(tw, "%s:\t%s\n", model.SharedFundName, r.Amount(report.SharedFund))
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing statistics: %w", err)
	}
	return nil
}

func (r *Renderer) settlementColor(s tally.Settlement) *color.Color {
	switch s.Kind {
	case tally.SettlementOwed:
		return r.palette[model.TierCritical]
	case tally.SettlementReturn:
		return r.palette[model.TierNormal]
	default:
		return r.palette[model.TierWarning]
	}
}

// Package export writes an expedition's grid as CSV for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/trekcalc/trekcalc/internal/expedition"
	"github.com/trekcalc/trekcalc/internal/model"
)

// DateColumn and TotalsLabel are the fixed labels of the grid.
const (
	DateColumn  = "Дата"
	TotalsLabel = "Итого"
)

// Header returns the header row: the date column, one column per real
// participant, and the shared fund.
func Header(exp *expedition.Expedition) []string {
	people := exp.People()
	row := make([]string, 0, len(people)+2)
	row = append(row, DateColumn)
	for _, p := range people {
		row = append(row, p.Name)
	}
	return append(row, model.SharedFundName)
}

// Rows returns one row per day followed by the totals row. Day rows leave the
// shared-fund column empty.
func Rows(exp *expedition.Expedition) [][]string {
	people := exp.People()
	cells := exp.Ledger.Rows()
	rows := make([][]string, 0, len(cells)+1)
	for d, texts := range cells {
		row := make([]string, 0, len(people)+2)
		row = append(row, exp.Date(d).Format(expedition.DisplayDateFormat))
		row = append(row, texts...)
		row = append(row, "")
		rows = append(rows, row)
	}

	totals := exp.Totals()
	last := make([]string, 0, len(people)+2)
	last = append(last, TotalsLabel)
	for _, t := range totals.Participants {
		last = append(last, t.Total.String())
	}
	last = append(last, totals.SharedFund.String())
	return append(rows, last)
}

// Write writes the header and all rows of exp to w.
func Write(w io.Writer, exp *expedition.Expedition) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Header(exp)); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range Rows(exp) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

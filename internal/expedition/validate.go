package expedition

import (
	"fmt"

	"github.com/trekcalc/trekcalc/internal/cell"
	"github.com/trekcalc/trekcalc/internal/ledger"
)

// ShapeError describes one way persisted rows disagree with the expedition's
// dimensions.
type ShapeError struct {
	Row         int // 1-based; 0 for the whole ledger
	Description string
}

func (e ShapeError) Error() string {
	if e.Row == 0 {
		return "ledger: " + e.Description
	}
	return fmt.Sprintf("ledger row %d: %s", e.Row, e.Description)
}

// ValidateRows lists every shape problem of rows against days × columns.
func ValidateRows(rows [][]string, days, columns int) []ShapeError {
	var errs []ShapeError
	if len(rows) != days {
		errs = append(errs, ShapeError{
			Description: fmt.Sprintf("%d rows, expected %d days", len(rows), days),
		})
	}
	for i, row := range rows {
		if len(row) != columns {
			errs = append(errs, ShapeError{
				Row:         i + 1,
				Description: fmt.Sprintf("%d cells, expected %d participants", len(row), columns),
			})
		}
	}
	return errs
}

// Reconcile turns persisted rows into a ledger of exactly days × columns.
//
// Rows of the right shape are used as they are. Rows carrying one extra
// trailing shared-fund column with nothing in it (the layout older files were
// written with) are trimmed. Anything else is discarded and replaced with an
// all-empty ledger; the returned errors say why.
func Reconcile(rows [][]string, days, columns int) (*ledger.Ledger, []ShapeError, error) {
	if ledger.ValidateShape(rows, days, columns) {
		return ledger.FromRows(rows), nil, nil
	}
	if trimmed, ok := trimFundColumn(rows, days, columns); ok {
		return ledger.FromRows(trimmed), nil, nil
	}

	errs := ValidateRows(rows, days, columns)
	l, err := ledger.New(columns, days)
	if err != nil {
		return nil, errs, err
	}
	return l, errs, nil
}

func trimFundColumn(rows [][]string, days, columns int) ([][]string, bool) {
	if len(rows) != days || !ledger.ValidateShape(rows, days, columns+1) {
		return nil, false
	}
	trimmed := make([][]string, len(rows))
	for i, row := range rows {
		if !cell.IsEmpty(row[columns]) {
			return nil, false
		}
		trimmed[i] = row[:columns]
	}
	return trimmed, true
}

// Package ledger holds the day × participant matrix of expense cells.
package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/trekcalc/trekcalc/internal/cell"
	"github.com/trekcalc/trekcalc/internal/model"
)

var (
	// ErrInvalidShape is returned when a ledger would have no days or no columns.
	ErrInvalidShape = errors.New("invalid ledger shape")
	// ErrOutOfRange is returned for a day or participant index outside the ledger.
	ErrOutOfRange = errors.New("cell out of range")
)

// slot is one cell: its entries plus the running numeric accumulator kept
// alongside them. total always equals cell.Sum(entries).
type slot struct {
	entries []model.Entry
	total   decimal.Decimal
}

// Ledger is a days × columns matrix of cells, one column per real
// participant. The shared fund never has a column.
type Ledger struct {
	slots [][]slot
}

// New returns an all-empty ledger with the given number of participant
// columns and days.
func New(participants, days int) (*Ledger, error) {
	if participants < 1 || days < 1 {
		return nil, fmt.Errorf("%w: %d participants × %d days", ErrInvalidShape, participants, days)
	}
	slots := make([][]slot, days)
	for d := range slots {
		slots[d] = make([]slot, participants)
	}
	return &Ledger{slots: slots}, nil
}

// FromRows decodes persisted cell text. Rows are taken as they are; callers
// check the shape with ValidateShape first.
func FromRows(rows [][]string) *Ledger {
	slots := make([][]slot, len(rows))
	for d, row := range rows {
		slots[d] = make([]slot, len(row))
		for p, text := range row {
			entries := cell.Parse(text)
			slots[d][p] = slot{entries: entries, total: cell.Sum(entries)}
		}
	}
	return &Ledger{slots: slots}
}

// ValidateShape reports whether rows has exactly days rows of exactly
// columns cells each.
func ValidateShape(rows [][]string, days, columns int) bool {
	if len(rows) != days {
		return false
	}
	for _, row := range rows {
		if len(row) != columns {
			return false
		}
	}
	return true
}

// Days returns the number of day rows.
func (l *Ledger) Days() int {
	return len(l.slots)
}

// Columns returns the number of participant columns.
func (l *Ledger) Columns() int {
	if len(l.slots) == 0 {
		return 0
	}
	return len(l.slots[0])
}

func (l *Ledger) slot(day, participant int) (*slot, error) {
	if day < 0 || day >= len(l.slots) || participant < 0 || participant >= len(l.slots[day]) {
		return nil, fmt.Errorf("%w: day %d, participant %d", ErrOutOfRange, day+1, participant+1)
	}
	return &l.slots[day][participant], nil
}

// Cell returns the text form of a cell.
func (l *Ledger) Cell(day, participant int) (string, error) {
	s, err := l.slot(day, participant)
	if err != nil {
		return "", err
	}
	return cell.Format(s.entries), nil
}

// Entries returns a copy of the entries of a cell.
func (l *Ledger) Entries(day, participant int) ([]model.Entry, error) {
	s, err := l.slot(day, participant)
	if err != nil {
		return nil, err
	}
	return append([]model.Entry(nil), s.entries...), nil
}

// Accumulator returns the numeric total of a cell.
func (l *Ledger) Accumulator(day, participant int) (decimal.Decimal, error) {
	s, err := l.slot(day, participant)
	if err != nil {
		return decimal.Zero, err
	}
	return s.total, nil
}

// SetCell replaces a cell with the given text. Malformed fragments are kept
// as text and count as zero.
func (l *Ledger) SetCell(day, participant int, text string) error {
	s, err := l.slot(day, participant)
	if err != nil {
		return err
	}
	entries := cell.Parse(text)
	*s = slot{entries: entries, total: cell.Sum(entries)}
	return nil
}

// AppendEntry records a new entry in a cell and returns it. The entry's sign
// comes from its category; see cell.NewEntry.
func (l *Ledger) AppendEntry(day, participant int, category model.Category, amount decimal.Decimal, sign byte) (model.Entry, error) {
	s, err := l.slot(day, participant)
	if err != nil {
		return model.Entry{}, err
	}
	e, err := cell.NewEntry(category, amount, sign)
	if err != nil {
		return model.Entry{}, err
	}
	s.entries = append(s.entries, e)
	s.total = s.total.Add(e.Amount)
	return e, nil
}

// Normalize rewrites every non-empty cell in canonical text form. Totals are
// unchanged.
func (l *Ledger) Normalize() {
	for d := range l.slots {
		for p := range l.slots[d] {
			s := &l.slots[d][p]
			if len(s.entries) == 0 {
				continue
			}
			s.entries = cell.Parse(cell.Normalize(cell.Format(s.entries)))
		}
	}
}

// Rows returns the text of every cell, for persistence.
func (l *Ledger) Rows() [][]string {
	rows := make([][]string, len(l.slots))
	for d, row := range l.slots {
		rows[d] = make([]string, len(row))
		for p, s := range row {
			rows[d][p] = cell.Format(s.entries)
		}
	}
	return rows
}

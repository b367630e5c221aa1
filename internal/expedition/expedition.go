// Package expedition ties participants, dates and the ledger of one trek
// together, and reads and writes it as a single JSON document.
package expedition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trekcalc/trekcalc/internal/ledger"
	"github.com/trekcalc/trekcalc/internal/model"
	"github.com/trekcalc/trekcalc/internal/tally"
)

const (
	// DateFormat is the layout of dates in the persisted document.
	DateFormat = "2006-01-02"
	// DisplayDateFormat is the layout of dates shown to people (dd.MM.yyyy).
	DisplayDateFormat = "02.01.2006"
)

var (
	// ErrUnknownParticipant is returned when a participant reference matches nobody.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrInvalidDuration is returned for a duration below one day.
	ErrInvalidDuration = errors.New("duration must be at least one day")
	// ErrInvalidContribution is returned for a negative initial contribution.
	ErrInvalidContribution = errors.New("initial contribution must not be negative")
	// ErrReservedName is returned when a participant is named like the shared fund.
	ErrReservedName = errors.New("name is reserved for the shared fund")
)

// Expedition is one trek: who takes part, when, and what they spent.
type Expedition struct {
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	DurationDays int
	Participants []model.Participant // last is always the shared fund
	Ledger       *ledger.Ledger
}

// EndDateFor returns the end date of a trek of days days starting at start.
func EndDateFor(start time.Time, days int) time.Time {
	return start.AddDate(0, 0, days)
}

// SetStartDate moves the trek and recomputes its end date.
func (e *Expedition) SetStartDate(start time.Time) {
	e.StartDate = start
	e.EndDate = EndDateFor(start, e.DurationDays)
}

// SetDurationDays changes the number of tracked days and recomputes the end
// date. The ledger is not resized here; a ledger whose shape no longer
// matches is rebuilt the next time the document is loaded.
func (e *Expedition) SetDurationDays(days int) error {
	if days < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDuration, days)
	}
	e.DurationDays = days
	e.EndDate = EndDateFor(e.StartDate, days)
	return nil
}

// Date returns the calendar date of a zero-based day row.
func (e *Expedition) Date(day int) time.Time {
	return e.StartDate.AddDate(0, 0, day)
}

// People returns the real participants, without the shared fund.
func (e *Expedition) People() []model.Participant {
	return tally.Real(e.Participants)
}

// ParticipantIndex resolves a participant by name (case-insensitive) or by
// 1-based column number, returning the zero-based ledger column.
func (e *Expedition) ParticipantIndex(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	people := e.People()
	for i, p := range people {
		if strings.EqualFold(p.Name, ref) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(people) {
		return n - 1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParticipant, ref)
}

// AppendEntry records an expense or top-up for a participant on a day.
func (e *Expedition) AppendEntry(day, participant int, category model.Category, amount decimal.Decimal, sign byte) (model.Entry, error) {
	return e.Ledger.AppendEntry(day, participant, category, amount, sign)
}

// SetCell overwrites the text of one cell.
func (e *Expedition) SetCell(day, participant int, text string) error {
	return e.Ledger.SetCell(day, participant, text)
}

// Totals recomputes the totals row.
func (e *Expedition) Totals() tally.Totals {
	return tally.Compute(e.Participants, e.Ledger)
}

// Statistics computes the end-of-trek report without changing anything.
func (e *Expedition) Statistics() tally.Report {
	return tally.Statistics(e.Participants, e.Ledger, e.DurationDays)
}

// Finish normalizes every cell's text and returns the statistics report.
func (e *Expedition) Finish() tally.Report {
	e.Ledger.Normalize()
	return e.Statistics()
}

// ParticipantInput is one row of the creation form.
type ParticipantInput struct {
	Name         string
	Contribution decimal.Decimal
}

// Form is what the creation form collects.
type Form struct {
	Name         string
	Participants []ParticipantInput
	StartDate    time.Time
	DurationDays int
}

// New creates an expedition with an all-empty ledger. Blank participant
// names get a numbered placeholder and the shared fund is appended last.
func New(f Form) (*Expedition, error) {
	if len(f.Participants) == 0 {
		return nil, fmt.Errorf("%w: no participants", ledger.ErrInvalidShape)
	}
	if f.DurationDays < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, f.DurationDays)
	}

	participants := make([]model.Participant, 0, len(f.Participants)+1)
	for i, in := range f.Participants {
		if in.Contribution.IsNegative() {
			return nil, fmt.Errorf("%w: participant %d", ErrInvalidContribution, i+1)
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = model.DefaultParticipantName(i)
		}
		if name == model.SharedFundName {
			return nil, fmt.Errorf("%w: participant %d", ErrReservedName, i+1)
		}
		participants = append(participants, model.Participant{Name: name, InitialContribution: in.Contribution})
	}
	participants = append(participants, model.SharedFund())

	l, err := ledger.New(len(participants)-1, f.DurationDays)
	if err != nil {
		return nil, err
	}

	return &Expedition{
		Name:         strings.TrimSpace(f.Name),
		StartDate:    f.StartDate,
		EndDate:      EndDateFor(f.StartDate, f.DurationDays),
		DurationDays: f.DurationDays,
		Participants: participants,
		Ledger:       l,
	}, nil
}

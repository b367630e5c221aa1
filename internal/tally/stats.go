package tally

import (
	"github.com/shopspring/decimal"

	"github.com/trekcalc/trekcalc/internal/ledger"
	"github.com/trekcalc/trekcalc/internal/model"
)

// SettlementKind says which way money moves when the trek is closed.
type SettlementKind string

const (
	SettlementReturn  SettlementKind = "return"  // fund returns money to the participant
	SettlementOwed    SettlementKind = "owed"    // participant still owes the fund
	SettlementSettled SettlementKind = "settled" // nothing to do
)

// Settlement is the end-of-trek outcome for one participant.
type Settlement struct {
	Kind   SettlementKind
	Amount decimal.Decimal // always non-negative
}

// Settle classifies a final balance after rounding it to whole units, so the
// kind always agrees with the amount shown.
func Settle(balance decimal.Decimal) Settlement {
	rounded := balance.RoundBank(0)
	switch {
	case rounded.IsPositive():
		return Settlement{Kind: SettlementReturn, Amount: rounded}
	case rounded.IsNegative():
		return Settlement{Kind: SettlementOwed, Amount: rounded.Abs()}
	default:
		return Settlement{Kind: SettlementSettled, Amount: decimal.Zero}
	}
}

// Message renders the settlement the way the statistics view shows it,
// with the amount as a whole number.
func (s Settlement) Message() string {
	amount := s.Amount.RoundBank(0).String()
	switch s.Kind {
	case SettlementReturn:
		return "К возврату: " + amount
	case SettlementOwed:
		return "Необходимо досдать в общак: " + amount
	default:
		return "Баланс нулевой"
	}
}

// Stat holds the end-of-trek statistics of one participant.
type Stat struct {
	Name          string
	Initial       decimal.Decimal
	TotalExpenses decimal.Decimal // absolute value of the net of all deltas
	DailyAverage  decimal.Decimal
	FinalBalance  decimal.Decimal
	Settlement    Settlement
	ByCategory    map[model.Category]decimal.Decimal // signed net per category
}

// Report is the statistics view of a finished trek.
type Report struct {
	Participants []Stat
	DailySpend   []decimal.Decimal // group spend per day, as a positive amount
	TotalSpend   decimal.Decimal
	SharedFund   decimal.Decimal
}

// Statistics computes the end-of-trek report. It reads each cell's numeric
// accumulator rather than re-parsing entries, so it agrees with the running
// totals only as long as the ledger's accumulators are consistent.
func Statistics(participants []model.Participant, l *ledger.Ledger, durationDays int) Report {
	people := Real(participants)
	r := Report{
		Participants: make([]Stat, len(people)),
		DailySpend:   make([]decimal.Decimal, l.Days()),
	}
	for i, p := range people {
		net := decimal.Zero
		byCategory := make(map[model.Category]decimal.Decimal)
		for day := 0; day < l.Days(); day++ {
			acc, err := l.Accumulator(day, i)
			if err != nil {
				continue
			}
			net = net.Add(acc)

			entries, _ := l.Entries(day, i)
			for _, e := range entries {
				if !e.Valid {
					continue
				}
				byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
				if e.Amount.IsNegative() {
					r.DailySpend[day] = r.DailySpend[day].Add(e.Amount.Abs())
				}
			}
		}

		total := net.Abs()
		average := decimal.Zero
		if durationDays > 0 {
			average = total.Div(decimal.NewFromInt(int64(durationDays)))
		}
		balance := p.InitialContribution.Add(net)

		r.Participants[i] = Stat{
			Name:          p.Name,
			Initial:       p.InitialContribution,
			TotalExpenses: total,
			DailyAverage:  average,
			FinalBalance:  balance,
			Settlement:    Settle(balance),
			ByCategory:    byCategory,
		}
		r.SharedFund = r.SharedFund.Add(balance)
	}

	for _, d := range r.DailySpend {
		r.TotalSpend = r.TotalSpend.Add(d)
	}
	return r
}

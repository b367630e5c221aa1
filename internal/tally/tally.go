// Package tally derives balances and statistics from an expedition ledger.
// Every function recomputes from scratch; nothing is cached between calls.
package tally

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/trekcalc/trekcalc/internal/ledger"
	"github.com/trekcalc/trekcalc/internal/model"
)

// LowBalance is the running total below which a participant is flagged.
var LowBalance = decimal.NewFromInt(1000)

// ParticipantTotal is the running total of one real participant.
type ParticipantTotal struct {
	Name    string
	Initial decimal.Decimal
	Total   decimal.Decimal
	Tier    model.Tier
}

// Totals is the totals row of the grid.
type Totals struct {
	Participants []ParticipantTotal
	SharedFund   decimal.Decimal
}

// Real returns the participants that are people, i.e. everyone except the
// shared fund.
func Real(participants []model.Participant) []model.Participant {
	out := make([]model.Participant, 0, len(participants))
	for _, p := range participants {
		if p.IsSharedFund() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Classify maps a running total to its presentation tier.
func Classify(total decimal.Decimal) model.Tier {
	switch {
	case total.IsNegative():
		return model.TierCritical
	case total.LessThan(LowBalance):
		return model.TierWarning
	default:
		return model.TierNormal
	}
}

// RunningTotal returns the initial contribution of participant index plus
// every valid entry in that participant's column. Malformed entries and
// missing cells count as zero.
func RunningTotal(participants []model.Participant, l *ledger.Ledger, index int) decimal.Decimal {
	people := Real(participants)
	if index < 0 || index >= len(people) {
		return decimal.Zero
	}
	total := people[index].InitialContribution
	for day := 0; day < l.Days(); day++ {
		entries, err := l.Entries(day, index)
		if err != nil {
			continue
		}
		for _, e := range entries {
			total = total.Add(e.Delta())
		}
	}
	return total
}

// SharedFundTotal is the cash available to the group: the sum of every real
// participant's running total.
func SharedFundTotal(participants []model.Participant, l *ledger.Ledger) decimal.Decimal {
	sum := decimal.Zero
	for i := range Real(participants) {
		sum = sum.Add(RunningTotal(participants, l, i))
	}
	return sum
}

// Compute returns the totals row for the current ledger state.
func Compute(participants []model.Participant, l *ledger.Ledger) Totals {
	people := Real(participants)
	t := Totals{Participants: make([]ParticipantTotal, len(people))}
	for i, p := range people {
		total := RunningTotal(participants, l, i)
		t.Participants[i] = ParticipantTotal{
			Name:    p.Name,
			Initial: p.InitialContribution,
			Total:   total,
			Tier:    Classify(total),
		}
		t.SharedFund = t.SharedFund.Add(total)
	}
	return t
}

// Warnings lists a message for every participant in the critical tier.
func (t Totals) Warnings() []string {
	var out []string
	for _, p := range t.Participants {
		if p.Tier == model.TierCritical {
			out = append(out, fmt.Sprintf("Участник %s: Внесите деньги!", p.Name))
		}
	}
	return out
}

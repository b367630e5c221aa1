package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SharedFundName is the name of the synthetic last participant that
// aggregates everybody's money. It is never a real contributor.
const SharedFundName = "Общак"

// Participant is one member of the expedition, or the shared fund.
type Participant struct {
	Name                string
	InitialContribution decimal.Decimal
}

// IsSharedFund reports whether p is the synthetic shared-fund row.
func (p Participant) IsSharedFund() bool {
	return p.Name == SharedFundName
}

// SharedFund returns the synthetic shared-fund participant.
func SharedFund() Participant {
	return Participant{Name: SharedFundName, InitialContribution: decimal.Zero}
}

// DefaultParticipantName returns the placeholder used for a participant whose
// name was left blank. index is zero-based.
func DefaultParticipantName(index int) string {
	return fmt.Sprintf("Участник %d", index+1)
}

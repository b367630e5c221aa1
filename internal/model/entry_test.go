package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategorySign(t *testing.T) {
	tests := []struct {
		cat    Category
		sign   byte
		credit bool
	}{
		{CategoryBreakfast, '-', false},
		{CategoryLunch, '-', false},
		{CategoryDinner, '-', false},
		{CategoryTopUp, '+', true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.sign, tt.cat.Sign(), "Sign(%q)", tt.cat)
		assert.Equal(t, tt.credit, tt.cat.IsCredit(), "IsCredit(%q)", tt.cat)
		assert.True(t, tt.cat.Known())
	}
	assert.False(t, Category("Ужин").Known())
}

func TestEntryDelta(t *testing.T) {
	valid := Entry{Category: CategoryLunch, Amount: decimal.NewFromInt(-300), Valid: true}
	assert.True(t, valid.Delta().Equal(decimal.NewFromInt(-300)))

	malformed := Entry{Raw: "garbage"}
	assert.True(t, malformed.Delta().IsZero())
}

func TestParticipantDefaults(t *testing.T) {
	assert.Equal(t, "Участник 1", DefaultParticipantName(0))
	assert.Equal(t, "Участник 12", DefaultParticipantName(11))

	fund := SharedFund()
	assert.True(t, fund.IsSharedFund())
	assert.True(t, fund.InitialContribution.IsZero())
	assert.False(t, Participant{Name: "Аня"}.IsSharedFund())
}

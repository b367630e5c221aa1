package expedition

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekcalc/trekcalc/internal/model"
)

var start = time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)

func newExpedition(t *testing.T, days int, contributions ...int64) *Expedition {
	t.Helper()
	f := Form{Name: "Annapurna Circuit", StartDate: start, DurationDays: days}
	names := []string{"Аня", "Борис", "Вика"}
	for i, c := range contributions {
		f.Participants = append(f.Participants, ParticipantInput{Name: names[i], Contribution: decimal.NewFromInt(c)})
	}
	exp, err := New(f)
	require.NoError(t, err)
	return exp
}

func TestNew(t *testing.T) {
	exp, err := New(Form{
		Name: "  Everest Base Camp ",
		Participants: []ParticipantInput{
			{Name: "Аня", Contribution: decimal.NewFromInt(20000)},
			{Name: "  ", Contribution: decimal.NewFromInt(15000)},
		},
		StartDate:    start,
		DurationDays: 14,
	})
	require.NoError(t, err)

	assert.Equal(t, "Everest Base Camp", exp.Name)
	require.Len(t, exp.Participants, 3)
	assert.Equal(t, "Участник 2", exp.Participants[1].Name)
	assert.True(t, exp.Participants[2].IsSharedFund())
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), exp.EndDate)
	assert.Equal(t, 14, exp.Ledger.Days())
	assert.Equal(t, 2, exp.Ledger.Columns())
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want error
	}{
		{
			name: "reserved name",
			form: Form{Participants: []ParticipantInput{{Name: model.SharedFundName}}, DurationDays: 1},
			want: ErrReservedName,
		},
		{
			name: "negative contribution",
			form: Form{Participants: []ParticipantInput{{Name: "A", Contribution: decimal.NewFromInt(-1)}}, DurationDays: 1},
			want: ErrInvalidContribution,
		},
		{
			name: "zero days",
			form: Form{Participants: []ParticipantInput{{Name: "A"}}, DurationDays: 0},
			want: ErrInvalidDuration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.form)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSetDurationDays(t *testing.T) {
	exp := newExpedition(t, 10, 20000)

	require.NoError(t, exp.SetDurationDays(12))
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), exp.EndDate)

	assert.ErrorIs(t, exp.SetDurationDays(0), ErrInvalidDuration)
	assert.Equal(t, 12, exp.DurationDays)

	exp.SetStartDate(start.AddDate(0, 0, 1))
	assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), exp.EndDate)
}

func TestParticipantIndex(t *testing.T) {
	exp := newExpedition(t, 1, 100, 200)

	i, err := exp.ParticipantIndex("борис")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = exp.ParticipantIndex("1")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	_, err = exp.ParticipantIndex("3")
	assert.ErrorIs(t, err, ErrUnknownParticipant)
	_, err = exp.ParticipantIndex(model.SharedFundName)
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestFinish(t *testing.T) {
	exp := newExpedition(t, 2, 20000, 20000)
	require.NoError(t, exp.SetCell(0, 0, "Завтрак -1 500;Пополнение +1000"))
	_, err := exp.AppendEntry(1, 1, model.CategoryDinner, decimal.NewFromInt(700), '-')
	require.NoError(t, err)

	before := exp.Totals()
	report := exp.Finish()

	text, err := exp.Ledger.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Завтрак -1500; Пополнение +1000", text)

	after := exp.Totals()
	assert.True(t, before.SharedFund.Equal(after.SharedFund))
	assert.True(t, report.SharedFund.Equal(decimal.NewFromInt(38800)))
	require.Len(t, report.Participants, 2)
	assert.True(t, report.Participants[0].FinalBalance.Equal(decimal.NewFromInt(19500)))
}

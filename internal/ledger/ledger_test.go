package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekcalc/trekcalc/internal/cell"
	"github.com/trekcalc/trekcalc/internal/model"
)

func TestNew(t *testing.T) {
	l, err := New(3, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, l.Days())
	assert.Equal(t, 3, l.Columns())

	for _, row := range l.Rows() {
		require.Len(t, row, 3)
		for _, text := range row {
			assert.Equal(t, cell.Empty, text)
		}
	}
}

func TestNew_InvalidShape(t *testing.T) {
	for _, dims := range [][2]int{{0, 5}, {3, 0}, {-1, 2}} {
		_, err := New(dims[0], dims[1])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidShape)
	}
}

func TestValidateShape(t *testing.T) {
	rows := [][]string{{"0", "0"}, {"0", "0"}}
	assert.True(t, ValidateShape(rows, 2, 2))
	assert.False(t, ValidateShape(rows, 3, 2), "row count mismatch")
	assert.False(t, ValidateShape(rows, 2, 3), "column count mismatch")
	assert.False(t, ValidateShape([][]string{{"0", "0"}, {"0"}}, 2, 2), "ragged rows")
	assert.True(t, ValidateShape(nil, 0, 2))
}

func TestAppendEntry(t *testing.T) {
	l, err := New(2, 2)
	require.NoError(t, err)

	e, err := l.AppendEntry(0, 0, model.CategoryBreakfast, decimal.NewFromInt(500), '-')
	require.NoError(t, err)
	assert.True(t, e.Amount.Equal(decimal.NewFromInt(-500)))

	_, err = l.AppendEntry(0, 0, model.CategoryTopUp, decimal.NewFromInt(1000), '+')
	require.NoError(t, err)

	text, err := l.Cell(0, 0)
	require.NoError(t, err)
	assert.Equal(t, "Завтрак -500; Пополнение +1000", text)

	acc, err := l.Accumulator(0, 0)
	require.NoError(t, err)
	assert.True(t, acc.Equal(decimal.NewFromInt(500)))

	other, err := l.Cell(1, 1)
	require.NoError(t, err)
	assert.Equal(t, cell.Empty, other)
}

func TestAppendEntry_OutOfRange(t *testing.T) {
	l, err := New(2, 2)
	require.NoError(t, err)

	for _, c := range [][2]int{{-1, 0}, {2, 0}, {0, 2}, {0, -1}} {
		_, err := l.AppendEntry(c[0], c[1], model.CategoryLunch, decimal.NewFromInt(1), '-')
		assert.ErrorIs(t, err, ErrOutOfRange, "day %d participant %d", c[0], c[1])
	}
}

func TestAppendEntry_UnknownCategoryLeavesCell(t *testing.T) {
	l, err := New(1, 1)
	require.NoError(t, err)

	_, err = l.AppendEntry(0, 0, model.Category("Ужин"), decimal.NewFromInt(100), '-')
	assert.ErrorIs(t, err, cell.ErrUnknownCategory)

	text, _ := l.Cell(0, 0)
	assert.Equal(t, cell.Empty, text)
	acc, _ := l.Accumulator(0, 0)
	assert.True(t, acc.IsZero())
}

func TestAccumulatorMatchesText(t *testing.T) {
	l, err := New(1, 1)
	require.NoError(t, err)

	amounts := []string{"120.4", "80.5", "1999.5", "0"}
	cats := []model.Category{model.CategoryLunch, model.CategoryDinner, model.CategoryTopUp, model.CategoryBreakfast}
	for i, a := range amounts {
		d, _ := decimal.NewFromString(a)
		_, err := l.AppendEntry(0, 0, cats[i], d, cats[i].Sign())
		require.NoError(t, err)

		text, _ := l.Cell(0, 0)
		acc, _ := l.Accumulator(0, 0)
		assert.True(t, acc.Equal(cell.Sum(cell.Parse(text))), "after %d appends: %s vs %q", i+1, acc, text)
	}
}

func TestSetCell(t *testing.T) {
	l, err := New(1, 1)
	require.NoError(t, err)
	_, err = l.AppendEntry(0, 0, model.CategoryLunch, decimal.NewFromInt(300), '-')
	require.NoError(t, err)

	require.NoError(t, l.SetCell(0, 0, "garbage"))
	text, _ := l.Cell(0, 0)
	assert.Equal(t, "garbage", text)
	acc, _ := l.Accumulator(0, 0)
	assert.True(t, acc.IsZero(), "malformed text contributes zero")

	require.NoError(t, l.SetCell(0, 0, "Обед -1 000; Пополнение +250"))
	acc, _ = l.Accumulator(0, 0)
	assert.True(t, acc.Equal(decimal.NewFromInt(-750)))

	assert.ErrorIs(t, l.SetCell(1, 0, "0"), ErrOutOfRange)
}

func TestFromRows(t *testing.T) {
	l := FromRows([][]string{
		{"Завтрак -500", "0"},
		{"Пополнение +1 000; garbage", "Ланч -200"},
	})
	assert.Equal(t, 2, l.Days())
	assert.Equal(t, 2, l.Columns())

	acc, err := l.Accumulator(1, 0)
	require.NoError(t, err)
	assert.True(t, acc.Equal(decimal.NewFromInt(1000)))

	rows := l.Rows()
	assert.Equal(t, "Пополнение +1000; garbage", rows[1][0])
	assert.Equal(t, "0", rows[0][1])
}

func TestNormalize(t *testing.T) {
	l := FromRows([][]string{{"Завтрак -1 500", "0"}})
	before, _ := l.Accumulator(0, 0)
	l.Normalize()
	after, _ := l.Accumulator(0, 0)
	assert.True(t, before.Equal(after))

	text, _ := l.Cell(0, 0)
	assert.Equal(t, "Завтрак -1500", text)
}

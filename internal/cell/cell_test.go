package cell

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trekcalc/trekcalc/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAppend_ZeroSentinel(t *testing.T) {
	text, delta, err := Append(Empty, model.CategoryBreakfast, decimal.Zero, '-')
	require.NoError(t, err)
	assert.Equal(t, "Завтрак -0", text)
	assert.True(t, delta.IsZero())
	assert.True(t, Sum(Parse(text)).IsZero())
}

func TestAppend_DropsSentinel(t *testing.T) {
	text, delta, err := Append("0", model.CategoryLunch, dec("500"), '-')
	require.NoError(t, err)
	assert.Equal(t, "Ланч -500", text)
	assert.True(t, delta.Equal(dec("-500")))
}

func TestAppend_Accumulates(t *testing.T) {
	text, _, err := Append("Завтрак -500", model.CategoryTopUp, dec("2000"), '+')
	require.NoError(t, err)
	assert.Equal(t, "Завтрак -500; Пополнение +2000", text)

	text, _, err = Append(text, model.CategoryBreakfast, dec("300"), '-')
	require.NoError(t, err)
	assert.Equal(t, "Завтрак -500; Пополнение +2000; Завтрак -300", text)
	assert.Len(t, Parse(text), 3, "entries in one cell never merge")
}

func TestAppend_SignFixedByCategory(t *testing.T) {
	for _, cat := range []model.Category{model.CategoryBreakfast, model.CategoryLunch, model.CategoryDinner} {
		for _, sign := range []byte{'+', '-', 0} {
			_, delta, err := Append(Empty, cat, dec("750"), sign)
			require.NoError(t, err)
			assert.True(t, delta.LessThanOrEqual(decimal.Zero), "%s with sign %q", cat, sign)
		}
		_, delta, err := Append(Empty, cat, dec("-750"), '+')
		require.NoError(t, err)
		assert.True(t, delta.Equal(dec("-750")), "negative input stays a debit for %s", cat)
	}
	for _, sign := range []byte{'+', '-', 0} {
		_, delta, err := Append(Empty, model.CategoryTopUp, dec("750"), sign)
		require.NoError(t, err)
		assert.True(t, delta.GreaterThanOrEqual(decimal.Zero), "top-up with sign %q", sign)
	}
}

func TestAppend_UnknownCategory(t *testing.T) {
	text, delta, err := Append("Ланч -100", model.Category("Ужин"), dec("100"), '-')
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Equal(t, "Ланч -100", text)
	assert.True(t, delta.IsZero())
}

func TestAppend_Rounding(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"499.6", "Обед -500"},
		{"2.5", "Обед -2"},
		{"3.5", "Обед -4"},
		{"0.4", "Обед -0"},
	}
	for _, tt := range tests {
		text, delta, err := Append(Empty, model.CategoryDinner, dec(tt.amount), '-')
		require.NoError(t, err)
		assert.Equal(t, tt.want, text, "amount %s", tt.amount)
		assert.True(t, delta.Equal(Sum(Parse(text))), "delta and text agree for %s", tt.amount)
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []struct {
		cat    model.Category
		amount string
		want   string
	}{
		{model.CategoryBreakfast, "500", "-500"},
		{model.CategoryTopUp, "1999.7", "2000"},
		{model.CategoryLunch, "120.2", "-120"},
		{model.CategoryDinner, "860", "-860"},
		{model.CategoryTopUp, "10", "10"},
	}

	text := Empty
	for _, in := range inputs {
		var err error
		text, _, err = Append(text, in.cat, dec(in.amount), in.cat.Sign())
		require.NoError(t, err)
	}

	got := Parse(text)
	require.Len(t, got, len(inputs))
	for i, in := range inputs {
		assert.True(t, got[i].Valid)
		assert.Equal(t, in.cat, got[i].Category, "entry %d", i)
		assert.True(t, got[i].Amount.Equal(dec(in.want)), "entry %d: got %s want %s", i, got[i].Amount, in.want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		valid []bool
		sum   string
	}{
		{"sentinel", "0", nil, "0"},
		{"blank", "  ", nil, "0"},
		{"single", "Завтрак -500", []bool{true}, "-500"},
		{"credit", "Пополнение +2000", []bool{true}, "2000"},
		{"thousands spaces", "Обед -1 500", []bool{true}, "-1500"},
		{"loose separators", "Завтрак -500 ;Ланч -200;", []bool{true, true}, "-700"},
		{"garbage", "garbage", []bool{false}, "0"},
		{"bad number", "Завтрак минус", []bool{false}, "0"},
		{"mixed", "Завтрак -500; garbage; Пополнение +100", []bool{true, false, true}, "-400"},
		{"unknown category still counts", "Ужин -300", []bool{true}, "-300"},
		{"bare number", "-500.0", []bool{false}, "0"},
		{"exponent", "Завтрак -1e200000000", []bool{false}, "0"},
		{"upper exponent", "Пополнение +5E3; Обед -100", []bool{false, true}, "-100"},
		{"beyond the cap", "Обед -10000000000000000", []bool{false}, "0"},
		{"at the cap", "Обед -1000000000000000", []bool{true}, "-1000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Parse(tt.text)
			require.Len(t, entries, len(tt.valid))
			for i, v := range tt.valid {
				assert.Equal(t, v, entries[i].Valid, "entry %d", i)
			}
			assert.True(t, Sum(entries).Equal(dec(tt.sum)), "sum %s, want %s", Sum(entries), tt.sum)
		})
	}
}

func TestFormat_KeepsMalformedText(t *testing.T) {
	text := "Завтрак -500; garbage"
	assert.Equal(t, text, Format(Parse(text)))
	assert.Equal(t, Empty, Format(nil))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"", "0"},
		{"Завтрак -1 500", "Завтрак -1500"},
		{"Завтрак -500 ;  Пополнение +2 000", "Завтрак -500; Пополнение +2000"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		got := Normalize(tt.in)
		assert.Equal(t, tt.want, got, "Normalize(%q)", tt.in)
		assert.Equal(t, got, Normalize(got), "idempotent for %q", tt.in)
		assert.True(t, Sum(Parse(tt.in)).Equal(Sum(Parse(got))), "no numeric effect for %q", tt.in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"500", "500"},
		{" 1 500 ", "1500"},
		{"12,5", "12.5"},
		{"+300", "300"},
		{"-200", "-200"},
		{"2*750", "1500"},
		{"(100+200)/3", "100"},
		{"", "0"},
		{"abc", "0"},
		{"1/0", "0"},
		{"500 рупий", "0"},
		{"1e200000000", "0"},
		{"2e3", "0"},
		{"-1E5", "0"},
		{"10000000000000000", "0"},
		{"99999999*99999999", "0"},
		{"1000000000000000", "1000000000000000"},
	}
	for _, tt := range tests {
		got := ParseAmount(tt.in)
		assert.True(t, got.Equal(dec(tt.want)), "ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
	}
}

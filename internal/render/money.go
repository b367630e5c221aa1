package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/trekcalc/trekcalc/internal/catalog"
)

// Money formats amounts as whole numbers with a space between thousands,
// e.g. "-19 500".
type Money struct {
	currency *money.Currency
	fmt      *money.Formatter
}

// NewMoney returns a formatter for the ISO currency code. Unknown codes fall
// back to the catalog currency.
func NewMoney(code string) *Money {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(catalog.Currency)
	}
	return &Money{
		currency: cur,
		fmt:      money.NewFormatter(0, ".", " ", "", "1"),
	}
}

// Format renders amount rounded half-to-even to a whole number.
func (m *Money) Format(amount decimal.Decimal) string {
	return m.fmt.Format(amount.RoundBank(0).IntPart())
}

// Unit is the label printed after totals: "рупий" for the catalog currency,
// the currency's symbol otherwise.
func (m *Money) Unit() string {
	if m.currency.Code == catalog.Currency {
		return catalog.CurrencyLabel
	}
	return m.currency.Grapheme
}

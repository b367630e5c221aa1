package model

import (
	"github.com/shopspring/decimal"
)

// Category labels a single ledger entry.
type Category string

const (
	CategoryBreakfast Category = "Завтрак"
	CategoryLunch     Category = "Ланч"
	CategoryDinner    Category = "Обед"
	CategoryTopUp     Category = "Пополнение"
)

// Categories lists the categories that can be recorded, in menu order.
var Categories = []Category{
	CategoryBreakfast,
	CategoryLunch,
	CategoryDinner,
	CategoryTopUp,
}

// Known reports whether c is one of the recordable categories.
func (c Category) Known() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// IsCredit reports whether entries of this category add money.
// Only top-ups are credits; every meal is a debit.
func (c Category) IsCredit() bool {
	return c == CategoryTopUp
}

// Sign returns '+' for credit categories and '-' for debit categories.
func (c Category) Sign() byte {
	if c.IsCredit() {
		return '+'
	}
	return '-'
}

// Entry is one labeled signed adjustment inside a ledger cell.
//
// Entries read from disk that do not match the "<category> <signed-number>"
// shape are kept with Raw set and Valid false, so the cell text survives a
// load/save cycle while contributing nothing to totals.
type Entry struct {
	Category Category
	Amount   decimal.Decimal // signed: negative = spend, positive = top-up
	Raw      string          // original text of a malformed entry
	Valid    bool
}

// Delta returns the signed amount this entry contributes to a balance.
func (e Entry) Delta() decimal.Decimal {
	if !e.Valid {
		return decimal.Zero
	}
	return e.Amount
}

// Package cell encodes and decodes the text stored in one ledger cell.
//
// A cell is either the sentinel "0" (no entries) or a list of entries joined
// by "; ", each entry being "<category> <signed amount>", for example
// "Завтрак -500; Пополнение +2000".
package cell

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/trekcalc/trekcalc/internal/model"
)

// Empty is the text of a cell without entries.
const Empty = "0"

// Separator joins entries inside a cell.
const Separator = "; "

// MaxAmount bounds the magnitude of any amount read from text. Larger
// numbers are malformed.
var MaxAmount = decimal.New(1, 15)

// maxNumberLen bounds the length of a numeric token before it is parsed.
const maxNumberLen = 32

// ErrUnknownCategory is returned when recording an entry whose category is
// not one of model.Categories.
var ErrUnknownCategory = errors.New("unknown category")

// IsEmpty reports whether text holds no entries.
func IsEmpty(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == Empty
}

// Parse decodes cell text into entries, in order. It never fails: fragments
// that do not look like "<category> <signed-number>" come back as malformed
// entries (Valid false) that contribute nothing to totals.
func Parse(text string) []model.Entry {
	if IsEmpty(text) {
		return nil
	}
	var entries []model.Entry
	for _, part := range strings.Split(text, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		entries = append(entries, ParseEntry(part))
	}
	return entries
}

// ParseEntry decodes a single entry. The category is everything before the
// first whitespace run; the rest must be one signed number, in which any
// whitespace is thousands formatting ("-1 500").
func ParseEntry(s string) model.Entry {
	s = strings.TrimSpace(s)
	malformed := model.Entry{Raw: s}

	i := strings.IndexFunc(s, unicode.IsSpace)
	if i <= 0 {
		return malformed
	}
	category := s[:i]
	number := stripSpaces(s[i:])
	if number == "" {
		return malformed
	}

	amount, err := parseSigned(number)
	if err != nil {
		return malformed
	}
	return model.Entry{
		Category: model.Category(category),
		Amount:   amount,
		Valid:    true,
	}
}

// FormatEntry renders an entry back to text. Malformed entries are written
// verbatim.
func FormatEntry(e model.Entry) string {
	if !e.Valid {
		return e.Raw
	}
	return string(e.Category) + " " + signedString(e)
}

// Format renders entries as cell text. No entries renders as the sentinel.
func Format(entries []model.Entry) string {
	if len(entries) == 0 {
		return Empty
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if s := FormatEntry(e); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return Empty
	}
	return strings.Join(parts, Separator)
}

// Sum returns the total signed delta of entries, skipping malformed ones.
func Sum(entries []model.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Delta())
	}
	return total
}

// NewEntry builds the entry recorded for a (category, amount, sign) triple.
//
// The sign is dictated by the category: meals are always debits and top-ups
// are always credits, whatever sign the caller passes. The amount is taken as
// an absolute value and rounded half-to-even to a whole number, so the text
// form and the numeric delta always agree.
func NewEntry(category model.Category, amount decimal.Decimal, _ byte) (model.Entry, error) {
	if !category.Known() {
		return model.Entry{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	abs := amount.Abs().RoundBank(0)
	if !category.IsCredit() {
		abs = abs.Neg()
	}
	return model.Entry{Category: category, Amount: abs, Valid: true}, nil
}

// Append adds a new entry to cell text and returns the new text together with
// the numeric delta the entry contributes. The sentinel is dropped before
// appending; existing entries are kept as they are.
func Append(text string, category model.Category, amount decimal.Decimal, sign byte) (string, decimal.Decimal, error) {
	e, err := NewEntry(category, amount, sign)
	if err != nil {
		return text, decimal.Zero, err
	}
	entries := append(Parse(text), e)
	return Format(entries), e.Amount, nil
}

// Normalize rewrites cell text into its canonical form: whitespace inside
// numbers is removed and separators are made uniform. It has no numeric
// effect and is idempotent.
func Normalize(text string) string {
	if IsEmpty(text) {
		return Empty
	}
	return Format(Parse(text))
}

func signedString(e model.Entry) string {
	switch {
	case e.Amount.IsNegative():
		return "-" + e.Amount.Abs().String()
	case e.Amount.IsPositive():
		return "+" + e.Amount.String()
	default:
		return string(e.Category.Sign()) + "0"
	}
}

func parseSigned(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(s, "+")
	if s == "" || strings.HasPrefix(s, "+") || strings.ContainsAny(s, "eE") || len(s) > maxNumberLen {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero, fmt.Errorf("number %q out of range", s)
	}
	return d, nil
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

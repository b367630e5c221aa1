package cell

import (
	"math"
	"regexp"
	"strings"

	"github.com/alfredxing/calc/compute"
	"github.com/shopspring/decimal"
)

// expression matches the arithmetic accepted in an amount field, e.g. "3*250".
var expression = regexp.MustCompile(`^[0-9+\-*/.() ]+$`)

// ParseAmount reads a free-text amount. Plain numbers, a decimal comma,
// thousands spaces ("1 500") and simple arithmetic ("2*750") are accepted.
// Exponent notation and magnitudes above MaxAmount are not accepted.
// Anything else reads as zero; invalid input never fails the caller.
func ParseAmount(text string) decimal.Decimal {
	s := strings.ReplaceAll(stripSpaces(text), ",", ".")
	if s == "" {
		return decimal.Zero
	}

	if d, err := parseSigned(s); err == nil {
		return d
	}

	if !expression.MatchString(s) {
		return decimal.Zero
	}
	return evaluate(s)
}

func evaluate(s string) (d decimal.Decimal) {
	defer func() {
		if recover() != nil {
			d = decimal.Zero
		}
	}()

	v, err := compute.Evaluate(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	d = decimal.NewFromFloat(v)
	if d.Abs().GreaterThan(MaxAmount) {
		return decimal.Zero
	}
	return d
}

// Package catalog lists the named treks an expedition can be created from.
package catalog

import (
	"sort"
	"strings"
	"time"
)

// Currency is the ISO code of the money tracked on every trek.
const Currency = "NPR"

// CurrencyLabel is how amounts are labeled on the creation form.
const CurrencyLabel = "рупий"

// DefaultContribution is the initial contribution suggested for a new participant.
const DefaultContribution = 20000

// ContributionStep is the increment the creation form offers for contributions.
const ContributionStep = 1000

// MaxContribution caps a single initial contribution.
const MaxContribution = 1000000

// DefaultStartDate is the start date suggested by the creation form.
var DefaultStartDate = time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

// Trek is a named route with its usual length.
type Trek struct {
	Name string
	Days int
}

// Default returns the built-in trek catalog.
func Default() []Trek {
	return []Trek{
		{Name: "Аннапурна", Days: 16},
		{Name: "Верхний Мустанг", Days: 10},
		{Name: "Госайкунда", Days: 7},
		{Name: "Канченджанга", Days: 20},
		{Name: "Лангтанг", Days: 10},
		{Name: "Манаслу", Days: 18},
		{Name: "Марди Химал", Days: 5},
		{Name: "Тибет", Days: 15},
		{Name: "Эверест", Days: 12},
		{Name: "Знакомство с Непалом", Days: 12},
	}
}

// Catalog provides lookup over treks.
type Catalog struct {
	treks  []Trek
	byName map[string]Trek
}

// New creates a Catalog from a slice of treks.
func New(treks []Trek) *Catalog {
	byName := make(map[string]Trek, len(treks))
	for _, t := range treks {
		byName[strings.ToLower(t.Name)] = t
	}
	return &Catalog{treks: treks, byName: byName}
}

// Get returns a trek by name, ignoring case.
func (c *Catalog) Get(name string) (Trek, bool) {
	t, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// Names returns the trek names in sorted order, as the creation form lists them.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.treks))
	for i, t := range c.treks {
		names[i] = t.Name
	}
	sort.Strings(names)
	return names
}

// DurationFor returns the default duration of a named trek, or fallback for
// free-text names.
func (c *Catalog) DurationFor(name string, fallback int) int {
	if t, ok := c.Get(name); ok {
		return t.Days
	}
	return fallback
}

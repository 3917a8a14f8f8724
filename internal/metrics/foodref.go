package metrics

import (
	"math"
	"strings"

	"github.com/jandersaraiva/nutrivida/internal/model"
)

// ReferenceTable is an immutable per-100g food lookup, keyed by normalized
// name. It is injected into AutoFill so the derivation stays independent of
// where the rows came from (bundled seed, manual entry, or a provider fetch).
type ReferenceTable map[string]model.FoodReferenceEntry

func NewReferenceTable(entries []model.FoodReferenceEntry) ReferenceTable {
	t := make(ReferenceTable, len(entries))
	for _, e := range entries {
		t[normalizeFoodName(e.Name)] = e
	}
	return t
}

// Lookup matches by exact case-insensitive name.
func (t ReferenceTable) Lookup(name string) (model.FoodReferenceEntry, bool) {
	e, ok := t[normalizeFoodName(name)]
	return e, ok
}

// AutoFill populates an item's macros from a reference match, scaled by
// quantity/100. No match leaves the item untouched so manual entry is never
// blocked by an incomplete table. Macro grams are rounded to one decimal.
func AutoFill(it model.FoodItem, table ReferenceTable) (model.FoodItem, bool) {
	ref, ok := table.Lookup(it.Name)
	if !ok {
		return it, false
	}
	grams := ParseQuantity(it.Quantity)
	if grams <= 0 {
		return it, false
	}
	factor := grams / 100
	it.ProteinG = round1(ref.ProteinPer100g * factor)
	it.CarbsG = round1(ref.CarbsPer100g * factor)
	it.FatG = round1(ref.FatPer100g * factor)
	it.Calories = int(math.Round(ref.CaloriesPer100g * factor))
	return it, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func normalizeFoodName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

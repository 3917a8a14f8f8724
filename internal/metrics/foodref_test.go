package metrics_test

import (
	"math"
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
	"github.com/jandersaraiva/nutrivida/internal/model"
)

func testTable() metrics.ReferenceTable {
	return metrics.NewReferenceTable([]model.FoodReferenceEntry{
		{Name: "Chicken Breast, Grilled", ProteinPer100g: 32, CarbsPer100g: 0, FatPer100g: 2.5, CaloriesPer100g: 159},
		{Name: "white rice, cooked", ProteinPer100g: 2.5, CarbsPer100g: 28, FatPer100g: 0.2, CaloriesPer100g: 128},
	})
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	table := testTable()
	if _, ok := table.Lookup("chicken breast, grilled"); !ok {
		t.Fatalf("expected lowercase lookup to match")
	}
	if _, ok := table.Lookup("  CHICKEN BREAST, GRILLED "); !ok {
		t.Fatalf("expected trimmed uppercase lookup to match")
	}
	if _, ok := table.Lookup("chicken"); ok {
		t.Fatalf("partial names must not match")
	}
}

func TestAutoFillScalesByQuantity(t *testing.T) {
	t.Parallel()
	it := model.FoodItem{Name: "chicken breast, grilled", Quantity: "150g"}
	filled, ok := metrics.AutoFill(it, testTable())
	if !ok {
		t.Fatalf("expected reference match")
	}
	if math.Abs(filled.ProteinG-48.0) > 0.05 {
		t.Fatalf("scaled protein = %v, want 48.0", filled.ProteinG)
	}
	if filled.Calories != 239 {
		t.Fatalf("scaled calories = %d, want 239", filled.Calories)
	}
}

func TestAutoFillLeavesUnmatchedItemsAlone(t *testing.T) {
	t.Parallel()
	it := model.FoodItem{Name: "grandma's lasagna", Quantity: "200g", ProteinG: 12, Calories: 410}
	filled, ok := metrics.AutoFill(it, testTable())
	if ok {
		t.Fatalf("expected no match")
	}
	if filled != it {
		t.Fatalf("unmatched item was mutated: %+v", filled)
	}
}

func TestAutoFillRequiresUsableQuantity(t *testing.T) {
	t.Parallel()
	it := model.FoodItem{Name: "white rice, cooked", Quantity: ""}
	if _, ok := metrics.AutoFill(it, testTable()); ok {
		t.Fatalf("expected no fill without a quantity")
	}
}

func TestDeriveCheckInShortCircuitsOnMissingBasics(t *testing.T) {
	t.Parallel()
	d := metrics.DeriveCheckIn(model.CheckIn{WeightKg: 80}, metrics.SexMale)
	if d.BMI != 0 || d.HealthScore != nil {
		t.Fatalf("expected empty derivation without height, got %+v", d)
	}
}

func TestDeriveCheckInFullProjection(t *testing.T) {
	t.Parallel()
	c := model.CheckIn{
		HeightM:     1.8,
		WeightKg:    81,
		BodyFatPct:  20,
		MusclePct:   40,
		VisceralFat: 7,
		Measurements: map[string]float64{
			"waist": 84,
			"hip":   100,
		},
	}
	d := metrics.DeriveCheckIn(c, metrics.SexMale)
	if math.Abs(d.BMI-25.0) > 1e-9 {
		t.Fatalf("BMI = %v, want 25", d.BMI)
	}
	if d.BMIBand != metrics.BMIOverweight {
		t.Fatalf("band = %s, want overweight", d.BMIBand)
	}
	if math.Abs(d.FatMassKg-16.2) > 1e-9 || math.Abs(d.LeanMassKg-32.4) > 1e-9 {
		t.Fatalf("mass split = %v / %v", d.FatMassKg, d.LeanMassKg)
	}
	if d.WaistHipRatio == nil || math.Abs(*d.WaistHipRatio-0.84) > 1e-9 {
		t.Fatalf("waist-hip ratio = %v", d.WaistHipRatio)
	}
	if d.HealthScore == nil || *d.HealthScore != 100 {
		t.Fatalf("health score = %v, want 100", d.HealthScore)
	}
}

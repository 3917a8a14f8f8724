package metrics

import (
	"math"

	"github.com/jandersaraiva/nutrivida/internal/model"
)

// Atwater energy factors, kcal per gram.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// DefaultPatientWeightKg is the fallback used for per-kilogram ratios when
// the patient has no recorded weight yet.
const DefaultPatientWeightKg = 70.0

// AtwaterCalories derives calories from macro grams.
func AtwaterCalories(proteinG, carbsG, fatG float64) int {
	return int(math.Round(proteinG*KcalPerGramProtein + carbsG*KcalPerGramCarbs + fatG*KcalPerGramFat))
}

// ItemCalories resolves a food item's effective calories: the stored value
// when present, otherwise the Atwater derivation from its macros.
func ItemCalories(it model.FoodItem) int {
	if it.Calories > 0 {
		return it.Calories
	}
	if it.ProteinG > 0 || it.CarbsG > 0 || it.FatG > 0 {
		return AtwaterCalories(it.ProteinG, it.CarbsG, it.FatG)
	}
	return 0
}

// MealTotals sums one meal's items. Free ("cheat") meals always total zero
// so they can never leak into plan aggregates.
type MealTotals struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

func SumMeal(m model.Meal) MealTotals {
	if m.IsFree {
		return MealTotals{}
	}
	var t MealTotals
	for _, it := range m.Items {
		t.Calories += ItemCalories(it)
		t.ProteinG += it.ProteinG
		t.CarbsG += it.CarbsG
		t.FatG += it.FatG
	}
	return t
}

// PlanSummary is the aggregate handed to plan views and reports.
type PlanSummary struct {
	TotalCalories    int     `json:"total_calories"`
	TotalProteinG    float64 `json:"total_protein_g"`
	TotalCarbsG      float64 `json:"total_carbs_g"`
	TotalFatsG       float64 `json:"total_fats_g"`
	PercentProtein   float64 `json:"percent_protein"`
	PercentCarbs     float64 `json:"percent_carbs"`
	PercentFats      float64 `json:"percent_fats"`
	GramsPerKgProt   float64 `json:"grams_per_kg_protein"`
	GramsPerKgCarbs  float64 `json:"grams_per_kg_carbs"`
	GramsPerKgFats   float64 `json:"grams_per_kg_fats"`
	PatientWeightKg  float64 `json:"patient_weight_kg"`
	UsedDefaultWt    bool    `json:"used_default_weight"`
	ExcludedFreeMeal bool    `json:"excluded_free_meal"`
}

// SummarizePlan aggregates all non-free meals of a plan. The percentage
// breakdown is taken against the Atwater-derived total when the macros make
// one available; otherwise the stored calorie total is used. Aggregation is
// order-independent and idempotent: it reads its inputs and writes nothing.
func SummarizePlan(meals []model.Meal, patientWeightKg float64) PlanSummary {
	s := PlanSummary{PatientWeightKg: patientWeightKg}
	if s.PatientWeightKg <= 0 {
		s.PatientWeightKg = DefaultPatientWeightKg
		s.UsedDefaultWt = true
	}

	for _, m := range meals {
		if m.IsFree {
			s.ExcludedFreeMeal = true
			continue
		}
		t := SumMeal(m)
		s.TotalCalories += t.Calories
		s.TotalProteinG += t.ProteinG
		s.TotalCarbsG += t.CarbsG
		s.TotalFatsG += t.FatG
	}

	derivedTotal := s.TotalProteinG*KcalPerGramProtein + s.TotalCarbsG*KcalPerGramCarbs + s.TotalFatsG*KcalPerGramFat
	base := derivedTotal
	if base <= 0 {
		base = float64(s.TotalCalories)
	}
	if base > 0 {
		s.PercentProtein = s.TotalProteinG * KcalPerGramProtein / base * 100
		s.PercentCarbs = s.TotalCarbsG * KcalPerGramCarbs / base * 100
		s.PercentFats = s.TotalFatsG * KcalPerGramFat / base * 100
	}

	s.GramsPerKgProt = s.TotalProteinG / s.PatientWeightKg
	s.GramsPerKgCarbs = s.TotalCarbsG / s.PatientWeightKg
	s.GramsPerKgFats = s.TotalFatsG / s.PatientWeightKg
	return s
}

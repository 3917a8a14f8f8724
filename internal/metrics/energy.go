package metrics

import "math"

// Sex is the biological-sex category the Mifflin-St Jeor constants and the
// health-score thresholds branch on.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// activityMultipliers maps activity level names to their TEE multiplier.
// Single source of truth, also used to validate level input upstream.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"very_active": 1.725,
	"extreme":     1.9,
}

// BMR computes basal metabolic rate via Mifflin-St Jeor, rounded to whole
// kcal. ok=false when weight, height, or age is missing; the caller keeps
// the previous value in that case rather than writing garbage.
func BMR(weightKg, heightM float64, ageYears int, sex Sex) (int, bool) {
	if weightKg <= 0 || heightM <= 0 || ageYears <= 0 {
		return 0, false
	}
	v := 10*weightKg + 6.25*(heightM*100) - 5*float64(ageYears)
	if sex == SexMale {
		v += 5
	} else {
		v -= 161
	}
	return int(math.Round(v)), true
}

// TEE is total energy expenditure: BMR scaled by an activity factor.
func TEE(bmrKcal int, activityFactor float64) int {
	return int(math.Round(float64(bmrKcal) * activityFactor))
}

// ActivityFactor resolves a level name to its multiplier.
func ActivityFactor(level string) (float64, bool) {
	f, ok := activityMultipliers[level]
	return f, ok
}

// ActivityLabel names a factor when it matches one of the five tiers.
// Unknown factors are not an error; they are simply displayed unlabeled.
func ActivityLabel(factor float64) string {
	for name, f := range activityMultipliers {
		if f == factor {
			return name
		}
	}
	return ""
}

// ActivityLevels lists the valid level names in ascending multiplier order.
func ActivityLevels() []string {
	return []string{"sedentary", "light", "moderate", "very_active", "extreme"}
}

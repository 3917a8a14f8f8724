package metrics

import "math"

// Health-score thresholds. Carried over verbatim from the clinic's scoring
// sheet; they have no cited clinical source and must not be retuned without
// breaking comparability of historical scores.
const (
	scoreBMIHigh        = 25.0
	scoreBMILow         = 18.5
	scoreVisceralLimit  = 9.0
	scoreFatLimitMale   = 25.0
	scoreFatLimitFemale = 32.0
	scoreMuscleTargetM  = 35.0
	scoreMuscleTargetF  = 30.0
)

// HealthScore is a heuristic 0-100 projection of one check-in: penalties for
// BMI outside the normal band, visceral fat, and excess body fat; a bonus
// for muscle mass above target. It is not a validated clinical index.
func HealthScore(bmi, visceralFat, bodyFatPct, musclePct float64, sex Sex) int {
	score := 100.0
	if bmi > scoreBMIHigh {
		score -= (bmi - scoreBMIHigh) * 2
	} else if bmi < scoreBMILow {
		score -= (scoreBMILow - bmi) * 2
	}
	if visceralFat > scoreVisceralLimit {
		score -= (visceralFat - scoreVisceralLimit) * 4
	}
	fatLimit := scoreFatLimitFemale
	if sex == SexMale {
		fatLimit = scoreFatLimitMale
	}
	if bodyFatPct > fatLimit {
		score -= bodyFatPct - fatLimit
	}
	muscleTarget := scoreMuscleTargetF
	if sex == SexMale {
		muscleTarget = scoreMuscleTargetM
	}
	if musclePct > muscleTarget {
		score += (musclePct - muscleTarget) * 0.5
	}
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

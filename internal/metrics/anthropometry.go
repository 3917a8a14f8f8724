package metrics

// BMIBand labels the fixed classification thresholds used for display.
type BMIBand string

const (
	BMIUnderweight BMIBand = "underweight"
	BMINormal      BMIBand = "normal"
	BMIOverweight  BMIBand = "overweight"
)

// BMI returns weight/height². Returns 0 when height is not positive; callers
// treat 0 as "not computed".
func BMI(weightKg, heightM float64) float64 {
	if heightM <= 0 {
		return 0
	}
	return weightKg / (heightM * heightM)
}

func ClassifyBMI(bmi float64) BMIBand {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	default:
		return BMIOverweight
	}
}

func FatMassKg(weightKg, bodyFatPct float64) float64 {
	return weightKg * bodyFatPct / 100
}

func LeanMassKg(weightKg, musclePct float64) float64 {
	return weightKg * musclePct / 100
}

func FatMassIndex(weightKg, bodyFatPct, heightM float64) float64 {
	if heightM <= 0 {
		return 0
	}
	return FatMassKg(weightKg, bodyFatPct) / (heightM * heightM)
}

func LeanMassIndex(weightKg, musclePct, heightM float64) float64 {
	if heightM <= 0 {
		return 0
	}
	return LeanMassKg(weightKg, musclePct) / (heightM * heightM)
}

// ResidualMassKg is what remains of total weight after fat and lean mass.
// The three components always sum back to weight.
func ResidualMassKg(weightKg, bodyFatPct, musclePct float64) float64 {
	return weightKg - FatMassKg(weightKg, bodyFatPct) - LeanMassKg(weightKg, musclePct)
}

// WaistHipRatio returns ok=false unless both circumferences are positive.
func WaistHipRatio(waistCm, hipCm float64) (float64, bool) {
	if waistCm <= 0 || hipCm <= 0 {
		return 0, false
	}
	return waistCm / hipCm, true
}

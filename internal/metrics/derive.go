package metrics

import "github.com/jandersaraiva/nutrivida/internal/model"

// Derived carries every view-time projection of one check-in. None of these
// values are persisted; they are recomputed on demand from the stored fields.
type Derived struct {
	BMI            float64  `json:"bmi,omitempty"`
	BMIBand        BMIBand  `json:"bmi_band,omitempty"`
	FatMassKg      float64  `json:"fat_mass_kg,omitempty"`
	LeanMassKg     float64  `json:"lean_mass_kg,omitempty"`
	ResidualMassKg float64  `json:"residual_mass_kg,omitempty"`
	FatMassIndex   float64  `json:"fat_mass_index,omitempty"`
	LeanMassIndex  float64  `json:"lean_mass_index,omitempty"`
	WaistHipRatio  *float64 `json:"waist_hip_ratio,omitempty"`
	HealthScore    *int     `json:"health_score,omitempty"`
}

// DeriveCheckIn computes the full projection for one check-in. Height and
// weight gate everything: without both, the result is empty rather than NaN.
func DeriveCheckIn(c model.CheckIn, sex Sex) Derived {
	if c.HeightM <= 0 || c.WeightKg <= 0 {
		return Derived{}
	}
	d := Derived{
		BMI:            BMI(c.WeightKg, c.HeightM),
		FatMassKg:      FatMassKg(c.WeightKg, c.BodyFatPct),
		LeanMassKg:     LeanMassKg(c.WeightKg, c.MusclePct),
		ResidualMassKg: ResidualMassKg(c.WeightKg, c.BodyFatPct, c.MusclePct),
		FatMassIndex:   FatMassIndex(c.WeightKg, c.BodyFatPct, c.HeightM),
		LeanMassIndex:  LeanMassIndex(c.WeightKg, c.MusclePct, c.HeightM),
	}
	d.BMIBand = ClassifyBMI(d.BMI)
	if ratio, ok := WaistHipRatio(c.Measurements["waist"], c.Measurements["hip"]); ok {
		d.WaistHipRatio = &ratio
	}
	score := HealthScore(d.BMI, c.VisceralFat, c.BodyFatPct, c.MusclePct, sex)
	d.HealthScore = &score
	return d
}

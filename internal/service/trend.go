package service

import (
	"database/sql"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
)

type TrendPoint struct {
	Date        string  `json:"date"`
	WeightKg    float64 `json:"weight_kg"`
	BMI         float64 `json:"bmi,omitempty"`
	BodyFatPct  float64 `json:"body_fat_pct,omitempty"`
	MusclePct   float64 `json:"muscle_pct,omitempty"`
	HealthScore int     `json:"health_score,omitempty"`
}

type TrendReport struct {
	PatientID      int64        `json:"patient_id"`
	Points         []TrendPoint `json:"points"`
	WeightDeltaKg  float64      `json:"weight_delta_kg"`
	BMIDelta       float64      `json:"bmi_delta"`
	BodyFatDelta   float64      `json:"body_fat_delta"`
	ScoreDelta     int          `json:"score_delta"`
	CheckInsInView int          `json:"check_ins_in_view"`
}

// PatientTrend builds the check-in time series oldest-first, with deltas
// between the first and last points in range that carry each value.
// Points missing height or weight contribute their stored values but no
// derivations, and are skipped by the deltas.
func PatientTrend(db *sql.DB, patientID int64, fromDate, toDate string) (*TrendReport, error) {
	patient, err := GetPatient(db, patientID)
	if err != nil {
		return nil, err
	}
	items, err := ListCheckIns(db, CheckInFilter{
		PatientID: patientID,
		FromDate:  fromDate,
		ToDate:    toDate,
		Limit:     1000,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &TrendReport{PatientID: patientID, Points: []TrendPoint{}}, nil
	}

	sex := PatientSex(patient)
	report := &TrendReport{PatientID: patientID, CheckInsInView: len(items)}
	// ListCheckIns returns newest-first; the chart wants oldest-first.
	for i := len(items) - 1; i >= 0; i-- {
		c := items[i]
		p := TrendPoint{
			Date:       c.CheckedAt.Format("2006-01-02"),
			WeightKg:   c.WeightKg,
			BodyFatPct: c.BodyFatPct,
			MusclePct:  c.MusclePct,
		}
		d := metrics.DeriveCheckIn(c, sex)
		p.BMI = d.BMI
		if d.HealthScore != nil {
			p.HealthScore = *d.HealthScore
		}
		report.Points = append(report.Points, p)
	}

	// Deltas span the first and last points that actually carry the value.
	// A check-in recorded without weight or height would otherwise drag a
	// zero into the comparison.
	report.WeightDeltaKg = deltaOver(report.Points, func(p TrendPoint) float64 { return p.WeightKg })
	report.BMIDelta = deltaOver(report.Points, func(p TrendPoint) float64 { return p.BMI })
	report.BodyFatDelta = deltaOver(report.Points, func(p TrendPoint) float64 { return p.BodyFatPct })
	report.ScoreDelta = int(deltaOver(report.Points, func(p TrendPoint) float64 { return float64(p.HealthScore) }))
	return report, nil
}

func deltaOver(points []TrendPoint, value func(TrendPoint) float64) float64 {
	var first, last float64
	seen := false
	for _, p := range points {
		v := value(p)
		if v <= 0 {
			continue
		}
		if !seen {
			first = v
			seen = true
		}
		last = v
	}
	if !seen {
		return 0
	}
	return last - first
}

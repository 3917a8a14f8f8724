package service_test

import (
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

func TestCheckInComputesBMRWhenMissing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{
		Name:      "Carlos Lima",
		Sex:       "male",
		BirthDate: "1996-01-10",
	})

	id, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID: patientID,
		CheckedAt: mustTime(t, "2026-01-10T09:00:00Z"),
		HeightM:   1.75,
		WeightKg:  70,
	})
	if err != nil {
		t.Fatalf("add check-in: %v", err)
	}

	ci, err := service.GetCheckIn(db, id)
	if err != nil {
		t.Fatalf("get check-in: %v", err)
	}
	// Mifflin-St Jeor, male, 70 kg / 1.75 m / 30 years.
	if ci.BMRKcal != 1649 {
		t.Fatalf("expected computed BMR 1649, got %d", ci.BMRKcal)
	}
}

func TestCheckInKeepsDeviceBMR(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{
		Name:      "Carlos Lima",
		Sex:       "male",
		BirthDate: "1996-01-10",
	})

	id, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID: patientID,
		HeightM:   1.75,
		WeightKg:  70,
		BMRKcal:   1702,
	})
	if err != nil {
		t.Fatalf("add check-in: %v", err)
	}

	ci, err := service.GetCheckIn(db, id)
	if err != nil {
		t.Fatalf("get check-in: %v", err)
	}
	if ci.BMRKcal != 1702 {
		t.Fatalf("device-reported BMR should win, got %d", ci.BMRKcal)
	}
}

func TestCheckInUpdateIsLastWriteWins(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Ana", Sex: "female", BirthDate: "2001-03-05"})
	id, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID: patientID,
		HeightM:   1.65,
		WeightKg:  60,
	})
	if err != nil {
		t.Fatalf("add check-in: %v", err)
	}

	err = service.UpdateCheckIn(db, id, service.CheckInInput{
		PatientID: patientID,
		HeightM:   1.65,
		WeightKg:  58.5,
		BMRKcal:   1400,
	})
	if err != nil {
		t.Fatalf("update check-in: %v", err)
	}

	ci, err := service.GetCheckIn(db, id)
	if err != nil {
		t.Fatalf("get check-in: %v", err)
	}
	if ci.WeightKg != 58.5 || ci.BMRKcal != 1400 {
		t.Fatalf("update not applied: %+v", ci)
	}
}

func TestCheckInMeasurementsRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Ana", Sex: "female"})
	id, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID: patientID,
		HeightM:   1.65,
		WeightKg:  60,
		Measurements: map[string]float64{
			"Waist":     74.5,
			"hip":       98.0,
			"Right Arm": 28.2,
		},
	})
	if err != nil {
		t.Fatalf("add check-in: %v", err)
	}

	ci, err := service.GetCheckIn(db, id)
	if err != nil {
		t.Fatalf("get check-in: %v", err)
	}
	if ci.Measurements["waist"] != 74.5 || ci.Measurements["hip"] != 98.0 {
		t.Fatalf("expected normalized keys, got %+v", ci.Measurements)
	}
	if ci.Measurements["right_arm"] != 28.2 {
		t.Fatalf("expected right_arm key, got %+v", ci.Measurements)
	}
}

func TestCheckInListFiltersAndOrder(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Ana", Sex: "female"})
	for _, day := range []string{"2026-03-01", "2026-03-05", "2026-03-09"} {
		_, err := service.AddCheckIn(db, service.CheckInInput{
			PatientID: patientID,
			CheckedAt: mustTime(t, day+"T10:00:00Z"),
			HeightM:   1.65,
			WeightKg:  60,
		})
		if err != nil {
			t.Fatalf("add check-in %s: %v", day, err)
		}
	}

	all, err := service.ListCheckIns(db, service.CheckInFilter{PatientID: patientID})
	if err != nil {
		t.Fatalf("list check-ins: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 check-ins, got %d", len(all))
	}
	if !all[0].CheckedAt.After(all[2].CheckedAt) {
		t.Fatalf("expected newest first, got %v then %v", all[0].CheckedAt, all[2].CheckedAt)
	}

	ranged, err := service.ListCheckIns(db, service.CheckInFilter{
		PatientID: patientID,
		FromDate:  "2026-03-02",
		ToDate:    "2026-03-08",
	})
	if err != nil {
		t.Fatalf("list ranged: %v", err)
	}
	if len(ranged) != 1 {
		t.Fatalf("expected 1 check-in in range, got %d", len(ranged))
	}

	single, err := service.ListCheckIns(db, service.CheckInFilter{PatientID: patientID, Date: "2026-03-05"})
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(single) != 1 {
		t.Fatalf("expected 1 check-in on date, got %d", len(single))
	}
}

func TestCheckInViewsCarryDerivedMetrics(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Carlos", Sex: "male"})
	_, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID:   patientID,
		HeightM:     1.80,
		WeightKg:    81.0,
		BodyFatPct:  20,
		MusclePct:   40,
		VisceralFat: 6,
	})
	if err != nil {
		t.Fatalf("add check-in: %v", err)
	}

	views, err := service.ListCheckInViews(db, service.CheckInFilter{PatientID: patientID})
	if err != nil {
		t.Fatalf("list views: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	d := views[0].Derived
	if d.BMI != 25.0 || d.BMIBand != "overweight" {
		t.Fatalf("unexpected derived: %+v", d)
	}
	if d.HealthScore == nil || *d.HealthScore != 100 {
		t.Fatalf("expected health score 100, got %+v", d.HealthScore)
	}
}

func TestCheckInViewsIncludeEnergyEstimate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{
		Name:      "Carlos Lima",
		Sex:       "male",
		BirthDate: "1996-01-10",
	})
	_, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID: patientID,
		CheckedAt: mustTime(t, "2026-01-10T09:00:00Z"),
		HeightM:   1.75,
		WeightKg:  70,
	})
	if err != nil {
		t.Fatalf("add check-in: %v", err)
	}

	// No configured level: sedentary applies.
	views, err := service.ListCheckInViews(db, service.CheckInFilter{PatientID: patientID})
	if err != nil {
		t.Fatalf("list views: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].ActivityLevel != "sedentary" || views[0].TEEKcal != 1979 {
		t.Fatalf("expected sedentary 1979 kcal, got %q %d", views[0].ActivityLevel, views[0].TEEKcal)
	}

	if err := service.SetConfig(db, service.ConfigDefaultActivityLevel, "moderate"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	views, err = service.ListCheckInViews(db, service.CheckInFilter{PatientID: patientID})
	if err != nil {
		t.Fatalf("list views: %v", err)
	}
	if views[0].ActivityLevel != "moderate" || views[0].TEEKcal != 2556 {
		t.Fatalf("expected moderate 2556 kcal, got %q %d", views[0].ActivityLevel, views[0].TEEKcal)
	}

	// A raw factor that matches a tier picks up its label.
	if err := service.SetConfig(db, service.ConfigDefaultActivityLevel, "1.55"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	views, err = service.ListCheckInViews(db, service.CheckInFilter{PatientID: patientID})
	if err != nil {
		t.Fatalf("list views: %v", err)
	}
	if views[0].ActivityLevel != "moderate" || views[0].TEEKcal != 2556 {
		t.Fatalf("expected labeled factor 2556 kcal, got %q %d", views[0].ActivityLevel, views[0].TEEKcal)
	}

	// Garbage falls back to sedentary rather than overstating.
	if err := service.SetConfig(db, service.ConfigDefaultActivityLevel, "couch"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	views, err = service.ListCheckInViews(db, service.CheckInFilter{PatientID: patientID})
	if err != nil {
		t.Fatalf("list views: %v", err)
	}
	if views[0].ActivityLevel != "sedentary" || views[0].TEEKcal != 1979 {
		t.Fatalf("expected sedentary fallback, got %q %d", views[0].ActivityLevel, views[0].TEEKcal)
	}
}

func TestCheckInDeleteAndLatest(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Ana", Sex: "female"})

	latest, err := service.LatestCheckIn(db, patientID)
	if err != nil {
		t.Fatalf("latest on empty: %v", err)
	}
	if latest != nil {
		t.Fatalf("expected nil latest, got %+v", latest)
	}

	first, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID: patientID,
		CheckedAt: mustTime(t, "2026-04-01T08:00:00Z"),
		HeightM:   1.65,
		WeightKg:  62,
	})
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	second, err := service.AddCheckIn(db, service.CheckInInput{
		PatientID: patientID,
		CheckedAt: mustTime(t, "2026-05-01T08:00:00Z"),
		HeightM:   1.65,
		WeightKg:  60,
	})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	latest, err = service.LatestCheckIn(db, patientID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.ID != second {
		t.Fatalf("expected latest %d, got %+v", second, latest)
	}

	if err := service.DeleteCheckIn(db, second); err != nil {
		t.Fatalf("delete: %v", err)
	}
	latest, err = service.LatestCheckIn(db, patientID)
	if err != nil {
		t.Fatalf("latest after delete: %v", err)
	}
	if latest == nil || latest.ID != first {
		t.Fatalf("expected latest %d after delete, got %+v", first, latest)
	}
}

package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jandersaraiva/nutrivida/internal/metrics"
	"github.com/jandersaraiva/nutrivida/internal/model"
)

// PatientReport is the full snapshot handed to exports: record, latest
// check-in with derivations, every plan with its aggregate, and upcoming
// appointments. The PDF layer of the web client renders this shape; here it
// is emitted as JSON.
type PatientReport struct {
	ReportID     string              `json:"report_id"`
	GeneratedAt  string              `json:"generated_at"`
	ClinicName   string              `json:"clinic_name,omitempty"`
	Patient      model.Patient       `json:"patient"`
	AgeYears     int                 `json:"age_years,omitempty"`
	LatestCheck  *CheckInView        `json:"latest_check_in,omitempty"`
	Plans        []PlanReport        `json:"plans"`
	Appointments []model.Appointment `json:"upcoming_appointments"`
	Trend        *TrendReport        `json:"trend,omitempty"`
}

type PlanReport struct {
	Plan    model.DietPlan      `json:"plan"`
	Meals   []model.Meal        `json:"meals"`
	Summary metrics.PlanSummary `json:"summary"`
}

func BuildPatientReport(db *sql.DB, patientID int64, now time.Time) (*PatientReport, error) {
	patient, err := GetPatient(db, patientID)
	if err != nil {
		return nil, err
	}
	report := &PatientReport{
		ReportID:     uuid.NewString(),
		GeneratedAt:  now.Format(time.RFC3339),
		Patient:      *patient,
		Plans:        []PlanReport{},
		Appointments: []model.Appointment{},
	}
	if age, ok := PatientAge(patient, now); ok {
		report.AgeYears = age
	}
	if clinic, ok, err := GetConfig(db, ConfigClinicName); err == nil && ok {
		report.ClinicName = clinic
	}

	latest, err := LatestCheckIn(db, patientID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		view := CheckInView{
			CheckIn: *latest,
			Derived: metrics.DeriveCheckIn(*latest, PatientSex(patient)),
		}
		if latest.BMRKcal > 0 {
			factor, level := DefaultActivity(db)
			view.TEEKcal = metrics.TEE(latest.BMRKcal, factor)
			view.ActivityLevel = level
		}
		report.LatestCheck = &view
	}

	plans, err := ListPlans(db, patientID)
	if err != nil {
		return nil, err
	}
	for _, plan := range plans {
		meals, err := LoadPlanMeals(db, plan.ID)
		if err != nil {
			return nil, err
		}
		var weightKg float64
		if latest != nil {
			weightKg = latest.WeightKg
		}
		report.Plans = append(report.Plans, PlanReport{
			Plan:    plan,
			Meals:   meals,
			Summary: metrics.SummarizePlan(meals, weightKg),
		})
	}

	upcoming, err := ListAppointments(db, AppointmentFilter{
		PatientID: patientID,
		FromDate:  now.Format("2006-01-02"),
		Status:    AppointmentScheduled,
	})
	if err != nil {
		return nil, err
	}
	report.Appointments = upcoming

	trend, err := PatientTrend(db, patientID, "", "")
	if err != nil {
		return nil, err
	}
	if len(trend.Points) > 0 {
		report.Trend = trend
	}
	return report, nil
}

// ExportPatientReportJSON renders the report for file export.
func ExportPatientReportJSON(db *sql.DB, patientID int64, now time.Time) ([]byte, error) {
	report, err := BuildPatientReport(db, patientID, now)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal patient report: %w", err)
	}
	return out, nil
}

package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
	"github.com/jandersaraiva/nutrivida/internal/model"
)

var measurementKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

type CheckInInput struct {
	PatientID    int64
	CheckedAt    time.Time
	HeightM      float64
	WeightKg     float64
	BodyFatPct   float64
	MusclePct    float64
	VisceralFat  float64
	BMRKcal      int
	BodyAgeYears int
	Measurements map[string]float64
	Notes        string
}

type CheckInFilter struct {
	PatientID int64
	Date      string
	FromDate  string
	ToDate    string
	Limit     int
}

// CheckInView pairs a stored check-in with its view-time derivations. TEE
// scales the check-in's BMR by the clinic's default activity level; it is
// absent when no BMR is on record.
type CheckInView struct {
	CheckIn       model.CheckIn   `json:"check_in"`
	Derived       metrics.Derived `json:"derived"`
	ActivityLevel string          `json:"activity_level,omitempty"`
	TEEKcal       int             `json:"tee_kcal,omitempty"`
}

// AddCheckIn stores a snapshot. When no BMR is supplied it is computed from
// the patient profile (Mifflin-St Jeor); a non-zero input wins, so a direct
// edit is never silently overwritten.
func AddCheckIn(db *sql.DB, in CheckInInput) (int64, error) {
	patient, err := GetPatient(db, in.PatientID)
	if err != nil {
		return 0, err
	}
	if err := validateCheckInInput(&in); err != nil {
		return 0, err
	}
	if in.CheckedAt.IsZero() {
		in.CheckedAt = time.Now()
	}
	fillComputedBMR(&in, patient)
	measurements, err := encodeMeasurements(in.Measurements)
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(`
INSERT INTO check_ins(patient_id, checked_at, height_m, weight_kg, body_fat_pct, muscle_pct, visceral_fat, bmr_kcal, body_age_years, measurements_json, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.PatientID, in.CheckedAt.Format(time.RFC3339), in.HeightM, in.WeightKg, in.BodyFatPct, in.MusclePct, in.VisceralFat, in.BMRKcal, in.BodyAgeYears, measurements, strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert check-in: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted check-in id: %w", err)
	}
	return id, nil
}

func GetCheckIn(db *sql.DB, id int64) (*model.CheckIn, error) {
	if id <= 0 {
		return nil, fmt.Errorf("check-in id must be > 0")
	}
	row := db.QueryRow(`
SELECT id, patient_id, checked_at, height_m, weight_kg, body_fat_pct, muscle_pct, visceral_fat, bmr_kcal, body_age_years, IFNULL(measurements_json, ''), IFNULL(notes, '')
FROM check_ins
WHERE id = ?
`, id)
	c, err := scanCheckIn(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("check-in %d not found", id)
		}
		return nil, fmt.Errorf("load check-in %d: %w", id, err)
	}
	return c, nil
}

func ListCheckIns(db *sql.DB, f CheckInFilter) ([]model.CheckIn, error) {
	if f.PatientID <= 0 {
		return nil, fmt.Errorf("patient id must be > 0")
	}
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	query := `
SELECT id, patient_id, checked_at, height_m, weight_kg, body_fat_pct, muscle_pct, visceral_fat, bmr_kcal, body_age_years, IFNULL(measurements_json, ''), IFNULL(notes, '')
FROM check_ins
WHERE patient_id = ?`
	args := []any{f.PatientID}

	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND checked_at >= ? AND checked_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND checked_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND checked_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY checked_at DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	defer rows.Close()

	items := make([]model.CheckIn, 0)
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check-ins: %w", err)
	}
	return items, nil
}

// ListCheckInViews returns the stored series newest-first, each paired with
// its derived metrics for the patient's sex category.
func ListCheckInViews(db *sql.DB, f CheckInFilter) ([]CheckInView, error) {
	patient, err := GetPatient(db, f.PatientID)
	if err != nil {
		return nil, err
	}
	items, err := ListCheckIns(db, f)
	if err != nil {
		return nil, err
	}
	sex := PatientSex(patient)
	factor, level := DefaultActivity(db)
	views := make([]CheckInView, 0, len(items))
	for _, c := range items {
		v := CheckInView{CheckIn: c, Derived: metrics.DeriveCheckIn(c, sex)}
		if c.BMRKcal > 0 {
			v.TEEKcal = metrics.TEE(c.BMRKcal, factor)
			v.ActivityLevel = level
		}
		views = append(views, v)
	}
	return views, nil
}

func UpdateCheckIn(db *sql.DB, id int64, in CheckInInput) error {
	if id <= 0 {
		return fmt.Errorf("check-in id must be > 0")
	}
	existing, err := GetCheckIn(db, id)
	if err != nil {
		return err
	}
	in.PatientID = existing.PatientID
	patient, err := GetPatient(db, in.PatientID)
	if err != nil {
		return err
	}
	if err := validateCheckInInput(&in); err != nil {
		return err
	}
	if in.CheckedAt.IsZero() {
		in.CheckedAt = existing.CheckedAt
	}
	fillComputedBMR(&in, patient)
	measurements, err := encodeMeasurements(in.Measurements)
	if err != nil {
		return err
	}

	res, err := db.Exec(`
UPDATE check_ins
SET checked_at = ?, height_m = ?, weight_kg = ?, body_fat_pct = ?, muscle_pct = ?, visceral_fat = ?, bmr_kcal = ?, body_age_years = ?, measurements_json = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.CheckedAt.Format(time.RFC3339), in.HeightM, in.WeightKg, in.BodyFatPct, in.MusclePct, in.VisceralFat, in.BMRKcal, in.BodyAgeYears, measurements, strings.TrimSpace(in.Notes), id)
	if err != nil {
		return fmt.Errorf("update check-in %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("check-in %d not found", id)
	}
	return nil
}

func DeleteCheckIn(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("check-in id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM check_ins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete check-in %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("check-in %d not found", id)
	}
	return nil
}

// LatestCheckIn returns nil without error when the patient has none yet.
func LatestCheckIn(db *sql.DB, patientID int64) (*model.CheckIn, error) {
	if patientID <= 0 {
		return nil, fmt.Errorf("patient id must be > 0")
	}
	row := db.QueryRow(`
SELECT id, patient_id, checked_at, height_m, weight_kg, body_fat_pct, muscle_pct, visceral_fat, bmr_kcal, body_age_years, IFNULL(measurements_json, ''), IFNULL(notes, '')
FROM check_ins
WHERE patient_id = ?
ORDER BY checked_at DESC
LIMIT 1
`, patientID)
	c, err := scanCheckIn(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("latest check-in for patient %d: %w", patientID, err)
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCheckIn(row rowScanner) (*model.CheckIn, error) {
	var c model.CheckIn
	var checkedAtRaw, measurementsRaw string
	if err := row.Scan(&c.ID, &c.PatientID, &checkedAtRaw, &c.HeightM, &c.WeightKg, &c.BodyFatPct, &c.MusclePct, &c.VisceralFat, &c.BMRKcal, &c.BodyAgeYears, &measurementsRaw, &c.Notes); err != nil {
		return nil, err
	}
	checked, err := time.Parse(time.RFC3339, checkedAtRaw)
	if err != nil {
		return nil, fmt.Errorf("parse checked_at: %w", err)
	}
	c.CheckedAt = checked
	measurements, err := decodeMeasurements(measurementsRaw)
	if err != nil {
		return nil, err
	}
	c.Measurements = measurements
	return &c, nil
}

func fillComputedBMR(in *CheckInInput, patient *model.Patient) {
	if in.BMRKcal > 0 {
		return
	}
	age, ok := PatientAge(patient, in.CheckedAt)
	if !ok {
		return
	}
	if bmr, ok := metrics.BMR(in.WeightKg, in.HeightM, age, PatientSex(patient)); ok {
		in.BMRKcal = bmr
	}
}

func validateCheckInInput(in *CheckInInput) error {
	if err := validateNonNegativeFloat("height", in.HeightM); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("weight", in.WeightKg); err != nil {
		return err
	}
	if err := validatePercent("body-fat", in.BodyFatPct); err != nil {
		return err
	}
	if err := validatePercent("muscle", in.MusclePct); err != nil {
		return err
	}
	if err := validateNonNegativeFloat("visceral-fat", in.VisceralFat); err != nil {
		return err
	}
	if err := validateNonNegativeInt("bmr", in.BMRKcal); err != nil {
		return err
	}
	if err := validateNonNegativeInt("body-age", in.BodyAgeYears); err != nil {
		return err
	}
	for key, value := range in.Measurements {
		if value < 0 {
			return fmt.Errorf("measurement %q must be >= 0", key)
		}
	}
	return nil
}

func encodeMeasurements(m map[string]float64) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	normalized := make(map[string]float64, len(m))
	for rawKey, value := range m {
		key := normalizeMeasurementKey(rawKey)
		if key == "" || !measurementKeyPattern.MatchString(key) {
			return "", fmt.Errorf("invalid measurement key %q (expected lowercase snake_case)", rawKey)
		}
		normalized[key] = value
	}
	encoded, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("marshal measurements: %w", err)
	}
	return string(encoded), nil
}

func decodeMeasurements(value string) (map[string]float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return map[string]float64{}, nil
	}
	var decoded map[string]float64
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return nil, fmt.Errorf("measurements must be a valid JSON object: %w", err)
	}
	return decoded, nil
}

func normalizeMeasurementKey(raw string) string {
	k := strings.TrimSpace(strings.ToLower(raw))
	k = strings.ReplaceAll(k, "-", "_")
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.Trim(k, "_")
	for strings.Contains(k, "__") {
		k = strings.ReplaceAll(k, "__", "_")
	}
	return k
}

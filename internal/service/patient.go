package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
	"github.com/jandersaraiva/nutrivida/internal/model"
)

type PatientInput struct {
	Name      string
	BirthDate string
	Sex       string
	Phone     string
	Email     string
	Notes     string
}

type ListPatientsFilter struct {
	Query           string
	IncludeArchived bool
	Limit           int
}

func CreatePatient(db *sql.DB, in PatientInput) (int64, error) {
	if err := validatePatientInput(&in); err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO patients(name, birth_date, sex, phone, email, notes)
VALUES(?, ?, ?, ?, ?, ?)
`, in.Name, in.BirthDate, in.Sex, strings.TrimSpace(in.Phone), strings.TrimSpace(in.Email), strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert patient: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted patient id: %w", err)
	}
	return id, nil
}

func GetPatient(db *sql.DB, id int64) (*model.Patient, error) {
	if id <= 0 {
		return nil, fmt.Errorf("patient id must be > 0")
	}
	var p model.Patient
	var birthDate, notes sql.NullString
	var archivedAt sql.NullTime
	err := db.QueryRow(`
SELECT id, name, IFNULL(birth_date, ''), sex, phone, email, IFNULL(notes, ''), archived_at, created_at, updated_at
FROM patients
WHERE id = ?
`, id).Scan(&p.ID, &p.Name, &birthDate, &p.Sex, &p.Phone, &p.Email, &notes, &archivedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("patient %d not found", id)
		}
		return nil, fmt.Errorf("load patient %d: %w", id, err)
	}
	p.BirthDate = birthDate.String
	p.Notes = notes.String
	if archivedAt.Valid {
		t := archivedAt.Time
		p.ArchivedAt = &t
	}
	return &p, nil
}

func ListPatients(db *sql.DB, f ListPatientsFilter) ([]model.Patient, error) {
	query := `
SELECT id, name, IFNULL(birth_date, ''), sex, phone, email, IFNULL(notes, ''), archived_at, created_at, updated_at
FROM patients
WHERE 1=1`
	args := make([]any, 0)

	if !f.IncludeArchived {
		query += ` AND archived_at IS NULL`
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+q+"%")
	}
	query += ` ORDER BY name ASC`
	if f.Limit <= 0 {
		f.Limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	items := make([]model.Patient, 0)
	for rows.Next() {
		var p model.Patient
		var birthDate, notes sql.NullString
		var archivedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Name, &birthDate, &p.Sex, &p.Phone, &p.Email, &notes, &archivedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		p.BirthDate = birthDate.String
		p.Notes = notes.String
		if archivedAt.Valid {
			t := archivedAt.Time
			p.ArchivedAt = &t
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return items, nil
}

func UpdatePatient(db *sql.DB, id int64, in PatientInput) error {
	if id <= 0 {
		return fmt.Errorf("patient id must be > 0")
	}
	if err := validatePatientInput(&in); err != nil {
		return err
	}
	res, err := db.Exec(`
UPDATE patients
SET name = ?, birth_date = ?, sex = ?, phone = ?, email = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.Name, in.BirthDate, in.Sex, strings.TrimSpace(in.Phone), strings.TrimSpace(in.Email), strings.TrimSpace(in.Notes), id)
	if err != nil {
		return fmt.Errorf("update patient %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("patient %d not found", id)
	}
	return nil
}

// ArchivePatient soft-deletes: the record and its history stay queryable but
// the patient drops out of default listings.
func ArchivePatient(db *sql.DB, id int64) error {
	return setPatientArchived(db, id, true)
}

func UnarchivePatient(db *sql.DB, id int64) error {
	return setPatientArchived(db, id, false)
}

func setPatientArchived(db *sql.DB, id int64, archived bool) error {
	if id <= 0 {
		return fmt.Errorf("patient id must be > 0")
	}
	value := any(nil)
	if archived {
		value = time.Now().Format(time.RFC3339)
	}
	res, err := db.Exec(`UPDATE patients SET archived_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("archive patient %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("patient %d not found", id)
	}
	return nil
}

// PatientAge derives whole years from the stored birth date at the given
// moment; ok=false when no birth date is recorded.
func PatientAge(p *model.Patient, at time.Time) (int, bool) {
	if strings.TrimSpace(p.BirthDate) == "" {
		return 0, false
	}
	born, err := time.Parse("2006-01-02", p.BirthDate)
	if err != nil {
		return 0, false
	}
	age := at.Year() - born.Year()
	if at.Before(born.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return 0, false
	}
	return age, true
}

// PatientSex maps the stored sex column onto the metrics category.
func PatientSex(p *model.Patient) metrics.Sex {
	if p.Sex == "male" {
		return metrics.SexMale
	}
	return metrics.SexFemale
}

func validatePatientInput(in *PatientInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("patient name is required")
	}
	in.Sex = normalizeName(in.Sex)
	if in.Sex != "male" && in.Sex != "female" {
		return fmt.Errorf("invalid sex %q (use male or female)", in.Sex)
	}
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	if in.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
			return fmt.Errorf("invalid birth date %q (expected YYYY-MM-DD)", in.BirthDate)
		}
	}
	return nil
}

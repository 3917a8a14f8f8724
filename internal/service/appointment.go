package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jandersaraiva/nutrivida/internal/model"
)

const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type AppointmentInput struct {
	PatientID   int64
	ScheduledAt time.Time
	DurationMin int
	Notes       string
}

type AppointmentFilter struct {
	PatientID int64
	Date      string
	FromDate  string
	ToDate    string
	Status    string
	Limit     int
}

func ScheduleAppointment(db *sql.DB, in AppointmentInput) (int64, error) {
	if _, err := GetPatient(db, in.PatientID); err != nil {
		return 0, err
	}
	if in.ScheduledAt.IsZero() {
		return 0, fmt.Errorf("appointment date/time is required")
	}
	if in.DurationMin <= 0 {
		in.DurationMin = 60
	}
	res, err := db.Exec(`
INSERT INTO appointments(patient_id, scheduled_at, duration_min, status, notes)
VALUES(?, ?, ?, ?, ?)
`, in.PatientID, in.ScheduledAt.Format(time.RFC3339), in.DurationMin, AppointmentScheduled, strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert appointment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted appointment id: %w", err)
	}
	return id, nil
}

func ListAppointments(db *sql.DB, f AppointmentFilter) ([]model.Appointment, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	query := `
SELECT id, patient_id, scheduled_at, duration_min, status, IFNULL(notes, '')
FROM appointments
WHERE 1=1`
	args := make([]any, 0)

	if f.PatientID > 0 {
		query += ` AND patient_id = ?`
		args = append(args, f.PatientID)
	}
	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND scheduled_at >= ? AND scheduled_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND scheduled_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND scheduled_at < ?`
		args = append(args, to)
	}
	if status := normalizeName(f.Status); status != "" {
		if status != AppointmentScheduled && status != AppointmentCompleted && status != AppointmentCancelled {
			return nil, fmt.Errorf("invalid status %q", f.Status)
		}
		query += ` AND status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY scheduled_at ASC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	items := make([]model.Appointment, 0)
	for rows.Next() {
		var a model.Appointment
		var scheduledRaw string
		if err := rows.Scan(&a.ID, &a.PatientID, &scheduledRaw, &a.DurationMin, &a.Status, &a.Notes); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		scheduled, err := time.Parse(time.RFC3339, scheduledRaw)
		if err != nil {
			return nil, fmt.Errorf("parse scheduled_at: %w", err)
		}
		a.ScheduledAt = scheduled
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}
	return items, nil
}

func CompleteAppointment(db *sql.DB, id int64) error {
	return transitionAppointment(db, id, AppointmentCompleted)
}

func CancelAppointment(db *sql.DB, id int64) error {
	return transitionAppointment(db, id, AppointmentCancelled)
}

// transitionAppointment only moves out of the scheduled state; completed and
// cancelled appointments are terminal.
func transitionAppointment(db *sql.DB, id int64, status string) error {
	if id <= 0 {
		return fmt.Errorf("appointment id must be > 0")
	}
	res, err := db.Exec(`
UPDATE appointments
SET status = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND status = ?
`, status, id, AppointmentScheduled)
	if err != nil {
		return fmt.Errorf("update appointment %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("appointment %d not found or not in scheduled state", id)
	}
	return nil
}

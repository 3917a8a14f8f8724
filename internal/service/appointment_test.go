package service_test

import (
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

func TestScheduleAndListAppointments(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Rafael", Sex: "male"})
	otherID := newTestPatient(t, db, service.PatientInput{Name: "Marta", Sex: "female"})

	first, err := service.ScheduleAppointment(db, service.AppointmentInput{
		PatientID:   patientID,
		ScheduledAt: mustTime(t, "2026-09-10T14:30:00Z"),
	})
	if err != nil {
		t.Fatalf("schedule first: %v", err)
	}
	_, err = service.ScheduleAppointment(db, service.AppointmentInput{
		PatientID:   patientID,
		ScheduledAt: mustTime(t, "2026-09-03T09:00:00Z"),
		DurationMin: 30,
	})
	if err != nil {
		t.Fatalf("schedule second: %v", err)
	}
	_, err = service.ScheduleAppointment(db, service.AppointmentInput{
		PatientID:   otherID,
		ScheduledAt: mustTime(t, "2026-09-10T16:00:00Z"),
	})
	if err != nil {
		t.Fatalf("schedule other patient: %v", err)
	}

	appts, err := service.ListAppointments(db, service.AppointmentFilter{PatientID: patientID})
	if err != nil {
		t.Fatalf("list by patient: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(appts))
	}
	if !appts[0].ScheduledAt.Before(appts[1].ScheduledAt) {
		t.Fatalf("expected chronological order, got %v then %v", appts[0].ScheduledAt, appts[1].ScheduledAt)
	}
	if appts[1].ID != first || appts[1].DurationMin != 60 {
		t.Fatalf("expected default 60 min duration, got %+v", appts[1])
	}

	day, err := service.ListAppointments(db, service.AppointmentFilter{Date: "2026-09-10"})
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(day) != 2 {
		t.Fatalf("expected 2 appointments on the day, got %d", len(day))
	}
}

func TestAppointmentStatusTransitions(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Rafael", Sex: "male"})
	id, err := service.ScheduleAppointment(db, service.AppointmentInput{
		PatientID:   patientID,
		ScheduledAt: mustTime(t, "2026-09-10T14:30:00Z"),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if err := service.CompleteAppointment(db, id); err != nil {
		t.Fatalf("complete: %v", err)
	}

	completed, err := service.ListAppointments(db, service.AppointmentFilter{
		PatientID: patientID,
		Status:    service.AppointmentCompleted,
	})
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 {
		t.Fatalf("expected 1 completed appointment, got %d", len(completed))
	}

	if err := service.CancelAppointment(db, id); err == nil {
		t.Fatalf("completed appointment must not be cancellable")
	}
}

func TestCancelledAppointmentIsTerminal(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	patientID := newTestPatient(t, db, service.PatientInput{Name: "Rafael", Sex: "male"})
	id, err := service.ScheduleAppointment(db, service.AppointmentInput{
		PatientID:   patientID,
		ScheduledAt: mustTime(t, "2026-09-10T14:30:00Z"),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if err := service.CancelAppointment(db, id); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := service.CompleteAppointment(db, id); err == nil {
		t.Fatalf("cancelled appointment must not be completable")
	}
}

package service_test

import (
	"strings"
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

func TestPatientCreateAndGet(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id, err := service.CreatePatient(db, service.PatientInput{
		Name:      "Maria Souza",
		BirthDate: "1990-04-12",
		Sex:       "female",
		Email:     "maria@example.com",
	})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}

	p, err := service.GetPatient(db, id)
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	if p.Name != "Maria Souza" || p.Sex != "female" || p.BirthDate != "1990-04-12" {
		t.Fatalf("unexpected patient: %+v", p)
	}
	if p.ArchivedAt != nil {
		t.Fatalf("new patient should not be archived")
	}
}

func TestPatientValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	cases := []struct {
		name string
		in   service.PatientInput
	}{
		{"empty name", service.PatientInput{Sex: "female"}},
		{"bad sex", service.PatientInput{Name: "X", Sex: "unknown"}},
		{"bad birth date", service.PatientInput{Name: "X", Sex: "male", BirthDate: "12/04/1990"}},
	}
	for _, tc := range cases {
		if _, err := service.CreatePatient(db, tc.in); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestPatientListFiltersAndArchive(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	active := newTestPatient(t, db, service.PatientInput{Name: "Ana Prado"})
	archived := newTestPatient(t, db, service.PatientInput{Name: "Bruno Prado"})
	newTestPatient(t, db, service.PatientInput{Name: "Carla Nunes"})

	if err := service.ArchivePatient(db, archived); err != nil {
		t.Fatalf("archive patient: %v", err)
	}

	patients, err := service.ListPatients(db, service.ListPatientsFilter{Query: "prado"})
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	if len(patients) != 1 || patients[0].ID != active {
		t.Fatalf("expected only active Prado, got %+v", patients)
	}

	patients, err = service.ListPatients(db, service.ListPatientsFilter{Query: "prado", IncludeArchived: true})
	if err != nil {
		t.Fatalf("list with archived: %v", err)
	}
	if len(patients) != 2 {
		t.Fatalf("expected both Prados, got %d", len(patients))
	}

	if err := service.UnarchivePatient(db, archived); err != nil {
		t.Fatalf("unarchive patient: %v", err)
	}
	p, err := service.GetPatient(db, archived)
	if err != nil {
		t.Fatalf("get unarchived: %v", err)
	}
	if p.ArchivedAt != nil {
		t.Fatalf("expected archived_at cleared, got %v", p.ArchivedAt)
	}
}

func TestPatientUpdate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id := newTestPatient(t, db, service.PatientInput{Name: "Old Name", Sex: "male"})
	err := service.UpdatePatient(db, id, service.PatientInput{
		Name:  "New Name",
		Sex:   "male",
		Phone: "+55 11 99999-0000",
	})
	if err != nil {
		t.Fatalf("update patient: %v", err)
	}

	p, err := service.GetPatient(db, id)
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	if p.Name != "New Name" || p.Phone != "+55 11 99999-0000" {
		t.Fatalf("update not applied: %+v", p)
	}
}

func TestPatientAge(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id := newTestPatient(t, db, service.PatientInput{Name: "Carlos", Sex: "male", BirthDate: "1994-06-15"})
	p, err := service.GetPatient(db, id)
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}

	at := mustTime(t, "2026-06-14T12:00:00Z")
	age, ok := service.PatientAge(p, at)
	if !ok || age != 31 {
		t.Fatalf("day before birthday: expected 31, got %d ok=%v", age, ok)
	}

	at = mustTime(t, "2026-06-15T12:00:00Z")
	age, ok = service.PatientAge(p, at)
	if !ok || age != 32 {
		t.Fatalf("on birthday: expected 32, got %d ok=%v", age, ok)
	}

	noBirth := newTestPatient(t, db, service.PatientInput{Name: "No Birth"})
	p2, err := service.GetPatient(db, noBirth)
	if err != nil {
		t.Fatalf("get patient: %v", err)
	}
	if _, ok := service.PatientAge(p2, at); ok {
		t.Fatalf("expected no age without birth date")
	}
}

func TestPatientNotFoundError(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, err := service.GetPatient(db, 999)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

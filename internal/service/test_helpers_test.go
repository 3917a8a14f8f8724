package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/jandersaraiva/nutrivida/internal/db"
	"github.com/jandersaraiva/nutrivida/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrivida.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func newTestPatient(t *testing.T, sqldb *sql.DB, in service.PatientInput) int64 {
	t.Helper()
	if in.Name == "" {
		in.Name = "Test Patient"
	}
	if in.Sex == "" {
		in.Sex = "female"
	}
	id, err := service.CreatePatient(sqldb, in)
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return id
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return ts
}

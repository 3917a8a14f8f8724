package db_test

import (
	"path/filepath"
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/db"
)

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nutrivida.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("re-apply migrations: %v", err)
	}

	for _, table := range []string{"patients", "check_ins", "appointments", "diet_plans", "meals", "food_items", "food_reference", "app_config", "clinic_users"} {
		var name string
		if err := sqldb.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name); err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
	}

	var foods int
	if err := sqldb.QueryRow(`SELECT COUNT(*) FROM food_reference`).Scan(&foods); err != nil {
		t.Fatalf("count reference foods: %v", err)
	}
	if foods == 0 {
		t.Fatalf("expected seeded reference foods")
	}
}

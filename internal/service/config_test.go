package service_test

import (
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

func TestConfigSetGetList(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, ok, err := service.GetConfig(db, service.ConfigClinicName); err != nil || ok {
		t.Fatalf("expected unset key, got ok=%v err=%v", ok, err)
	}

	if err := service.SetConfig(db, service.ConfigClinicName, "NutriVida Clinic"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := service.SetConfig(db, service.ConfigDefaultActivityLevel, "moderate"); err != nil {
		t.Fatalf("set activity: %v", err)
	}

	value, ok, err := service.GetConfig(db, service.ConfigClinicName)
	if err != nil || !ok || value != "NutriVida Clinic" {
		t.Fatalf("get: value=%q ok=%v err=%v", value, ok, err)
	}

	// Overwrite.
	if err := service.SetConfig(db, service.ConfigClinicName, "NutriVida"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, err = service.GetConfig(db, service.ConfigClinicName)
	if err != nil || value != "NutriVida" {
		t.Fatalf("expected overwrite, got %q err=%v", value, err)
	}

	all, err := service.ListConfig(db)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[service.ConfigDefaultActivityLevel] != "moderate" {
		t.Fatalf("unexpected config map: %+v", all)
	}
}

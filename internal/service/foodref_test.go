package service_test

import (
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

func TestReferenceFoodUpsertByName(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	_, err := service.AddReferenceFood(db, service.ReferenceFoodInput{
		Name:            "Tapioca",
		CarbsPer100g:    87,
		CaloriesPer100g: 350,
	})
	if err != nil {
		t.Fatalf("add reference food: %v", err)
	}

	// Same normalized name overwrites the row.
	_, err = service.AddReferenceFood(db, service.ReferenceFoodInput{
		Name:            "  TAPIOCA ",
		CarbsPer100g:    88,
		CaloriesPer100g: 352,
	})
	if err != nil {
		t.Fatalf("upsert reference food: %v", err)
	}

	foods, err := service.ListReferenceFoods(db, "tapioca", 0)
	if err != nil {
		t.Fatalf("list reference foods: %v", err)
	}
	if len(foods) != 1 {
		t.Fatalf("expected single tapioca row, got %d", len(foods))
	}
	if foods[0].CarbsPer100g != 88 || foods[0].CaloriesPer100g != 352 {
		t.Fatalf("expected last write to win, got %+v", foods[0])
	}
}

func TestReferenceFoodValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddReferenceFood(db, service.ReferenceFoodInput{}); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := service.AddReferenceFood(db, service.ReferenceFoodInput{
		Name:           "bad",
		ProteinPer100g: -1,
	}); err == nil {
		t.Fatalf("expected error for negative macro")
	}
}

func TestLoadReferenceTableIncludesBundledFoods(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	table, err := service.LoadReferenceTable(db)
	if err != nil {
		t.Fatalf("load reference table: %v", err)
	}
	entry, ok := table.Lookup("Chicken Breast, Grilled")
	if !ok {
		t.Fatalf("expected bundled chicken breast entry")
	}
	if entry.ProteinPer100g != 32.0 {
		t.Fatalf("unexpected bundled entry: %+v", entry)
	}
}

func TestDeleteReferenceFood(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddReferenceFood(db, service.ReferenceFoodInput{
		Name:            "acai pulp",
		CarbsPer100g:    6,
		FatPer100g:      4,
		CaloriesPer100g: 58,
	}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := service.DeleteReferenceFood(db, "Acai Pulp"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	table, err := service.LoadReferenceTable(db)
	if err != nil {
		t.Fatalf("reload table: %v", err)
	}
	if _, ok := table.Lookup("acai pulp"); ok {
		t.Fatalf("expected entry removed")
	}
}

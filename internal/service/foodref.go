package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
	"github.com/jandersaraiva/nutrivida/internal/model"
)

type ReferenceFoodInput struct {
	Name            string
	ProteinPer100g  float64
	CarbsPer100g    float64
	FatPer100g      float64
	CaloriesPer100g float64
	Source          string
}

// AddReferenceFood upserts one per-100g row. Bundled rows can be overridden
// by name; the last write wins.
func AddReferenceFood(db *sql.DB, in ReferenceFoodInput) (int64, error) {
	name := normalizeName(in.Name)
	if name == "" {
		return 0, fmt.Errorf("reference food name is required")
	}
	for _, check := range []struct {
		label string
		value float64
	}{
		{"protein per 100g", in.ProteinPer100g},
		{"carbs per 100g", in.CarbsPer100g},
		{"fat per 100g", in.FatPer100g},
		{"calories per 100g", in.CaloriesPer100g},
	} {
		if err := validateNonNegativeFloat(check.label, check.value); err != nil {
			return 0, err
		}
	}
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = "manual"
	}
	res, err := db.Exec(`
INSERT INTO food_reference(name, protein_per_100g, carbs_per_100g, fat_per_100g, calories_per_100g, source)
VALUES(?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
  protein_per_100g=excluded.protein_per_100g,
  carbs_per_100g=excluded.carbs_per_100g,
  fat_per_100g=excluded.fat_per_100g,
  calories_per_100g=excluded.calories_per_100g,
  source=excluded.source,
  updated_at=CURRENT_TIMESTAMP
`, name, in.ProteinPer100g, in.CarbsPer100g, in.FatPer100g, in.CaloriesPer100g, source)
	if err != nil {
		return 0, fmt.Errorf("upsert reference food %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve reference food id: %w", err)
	}
	return id, nil
}

func ListReferenceFoods(db *sql.DB, query string, limit int) ([]model.FoodReferenceEntry, error) {
	sqlQuery := `
SELECT id, name, protein_per_100g, carbs_per_100g, fat_per_100g, calories_per_100g, source
FROM food_reference
WHERE 1=1`
	args := make([]any, 0)
	if q := strings.TrimSpace(query); q != "" {
		sqlQuery += ` AND name LIKE ?`
		args = append(args, "%"+normalizeName(q)+"%")
	}
	sqlQuery += ` ORDER BY name ASC`
	if limit <= 0 {
		limit = 100
	}
	sqlQuery += ` LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("list reference foods: %w", err)
	}
	defer rows.Close()

	items := make([]model.FoodReferenceEntry, 0)
	for rows.Next() {
		var e model.FoodReferenceEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.ProteinPer100g, &e.CarbsPer100g, &e.FatPer100g, &e.CaloriesPer100g, &e.Source); err != nil {
			return nil, fmt.Errorf("scan reference food: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reference foods: %w", err)
	}
	return items, nil
}

// LoadReferenceTable materializes the whole table for injection into the
// auto-fill derivation. The table is small enough that loading it per
// operation is cheaper than keeping a cache coherent.
func LoadReferenceTable(db *sql.DB) (metrics.ReferenceTable, error) {
	rows, err := db.Query(`
SELECT id, name, protein_per_100g, carbs_per_100g, fat_per_100g, calories_per_100g, source
FROM food_reference
`)
	if err != nil {
		return nil, fmt.Errorf("load reference table: %w", err)
	}
	defer rows.Close()

	entries := make([]model.FoodReferenceEntry, 0)
	for rows.Next() {
		var e model.FoodReferenceEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.ProteinPer100g, &e.CarbsPer100g, &e.FatPer100g, &e.CaloriesPer100g, &e.Source); err != nil {
			return nil, fmt.Errorf("scan reference food: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reference foods: %w", err)
	}
	return metrics.NewReferenceTable(entries), nil
}

func DeleteReferenceFood(db *sql.DB, name string) error {
	normalized := normalizeName(name)
	if normalized == "" {
		return fmt.Errorf("reference food name is required")
	}
	res, err := db.Exec(`DELETE FROM food_reference WHERE name = ?`, normalized)
	if err != nil {
		return fmt.Errorf("delete reference food %q: %w", normalized, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("reference food %q not found", normalized)
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS patients (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  birth_date TEXT,
  sex TEXT NOT NULL CHECK(sex IN ('male', 'female')),
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  notes TEXT,
  archived_at DATETIME,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS check_ins (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  patient_id INTEGER NOT NULL,
  checked_at DATETIME NOT NULL,
  height_m REAL NOT NULL DEFAULT 0 CHECK(height_m >= 0),
  weight_kg REAL NOT NULL DEFAULT 0 CHECK(weight_kg >= 0),
  body_fat_pct REAL NOT NULL DEFAULT 0 CHECK(body_fat_pct >= 0 AND body_fat_pct <= 100),
  muscle_pct REAL NOT NULL DEFAULT 0 CHECK(muscle_pct >= 0 AND muscle_pct <= 100),
  visceral_fat REAL NOT NULL DEFAULT 0 CHECK(visceral_fat >= 0),
  bmr_kcal INTEGER NOT NULL DEFAULT 0 CHECK(bmr_kcal >= 0),
  body_age_years INTEGER NOT NULL DEFAULT 0 CHECK(body_age_years >= 0),
  measurements_json TEXT NOT NULL DEFAULT '',
  notes TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(patient_id) REFERENCES patients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_check_ins_patient_id ON check_ins(patient_id);
CREATE INDEX IF NOT EXISTS idx_check_ins_checked_at ON check_ins(checked_at);

CREATE TABLE IF NOT EXISTS appointments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  patient_id INTEGER NOT NULL,
  scheduled_at DATETIME NOT NULL,
  duration_min INTEGER NOT NULL DEFAULT 60 CHECK(duration_min > 0),
  status TEXT NOT NULL DEFAULT 'scheduled' CHECK(status IN ('scheduled', 'completed', 'cancelled')),
  notes TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(patient_id) REFERENCES patients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id);
CREATE INDEX IF NOT EXISTS idx_appointments_scheduled_at ON appointments(scheduled_at);
`,
	},
	{
		version: 2,
		name:    "diet_plans",
		sql: `
CREATE TABLE IF NOT EXISTS diet_plans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  patient_id INTEGER NOT NULL,
  name TEXT NOT NULL,
  water_ml INTEGER NOT NULL DEFAULT 0 CHECK(water_ml >= 0),
  notes TEXT,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(patient_id) REFERENCES patients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_diet_plans_patient_id ON diet_plans(patient_id);

CREATE TABLE IF NOT EXISTS meals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  plan_id INTEGER NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  name TEXT NOT NULL,
  time_of_day TEXT NOT NULL DEFAULT '',
  is_free INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(plan_id) REFERENCES diet_plans(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_meals_plan_id ON meals(plan_id);

CREATE TABLE IF NOT EXISTS food_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_id INTEGER NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  name TEXT NOT NULL,
  quantity TEXT NOT NULL DEFAULT '',
  protein_g REAL NOT NULL DEFAULT 0 CHECK(protein_g >= 0),
  carbs_g REAL NOT NULL DEFAULT 0 CHECK(carbs_g >= 0),
  fat_g REAL NOT NULL DEFAULT 0 CHECK(fat_g >= 0),
  calories INTEGER NOT NULL DEFAULT 0 CHECK(calories >= 0),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(meal_id) REFERENCES meals(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_food_items_meal_id ON food_items(meal_id);
`,
	},
	{
		version: 3,
		name:    "food_reference",
		sql: `
CREATE TABLE IF NOT EXISTS food_reference (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  protein_per_100g REAL NOT NULL DEFAULT 0 CHECK(protein_per_100g >= 0),
  carbs_per_100g REAL NOT NULL DEFAULT 0 CHECK(carbs_per_100g >= 0),
  fat_per_100g REAL NOT NULL DEFAULT 0 CHECK(fat_per_100g >= 0),
  calories_per_100g REAL NOT NULL DEFAULT 0 CHECK(calories_per_100g >= 0),
  source TEXT NOT NULL DEFAULT 'bundled',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 4,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
	{
		version: 5,
		name:    "clinic_users",
		sql: `
CREATE TABLE IF NOT EXISTS clinic_users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  display_name TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

type referenceFood struct {
	name     string
	protein  float64
	carbs    float64
	fat      float64
	calories float64
}

// Per-100g values for the bundled starter table. Clinics extend it through
// "nutrivida foodref add" or the Open Food Facts fetch command.
var bundledFoods = []referenceFood{
	{"white rice, cooked", 2.5, 28.0, 0.2, 128},
	{"brown rice, cooked", 2.6, 25.8, 1.0, 124},
	{"black beans, cooked", 4.5, 14.0, 0.5, 77},
	{"chicken breast, grilled", 32.0, 0.0, 2.5, 159},
	{"lean ground beef, cooked", 26.4, 0.0, 15.0, 250},
	{"tilapia, grilled", 26.2, 0.0, 2.6, 128},
	{"whole egg, boiled", 13.0, 0.6, 9.5, 146},
	{"oats, rolled", 13.9, 66.6, 7.0, 394},
	{"banana", 1.3, 26.0, 0.1, 98},
	{"apple", 0.3, 15.2, 0.2, 56},
	{"sweet potato, boiled", 1.2, 18.4, 0.1, 77},
	{"potato, boiled", 1.2, 11.9, 0.0, 52},
	{"whole wheat bread", 9.4, 49.9, 3.7, 253},
	{"skim milk", 3.4, 4.9, 0.1, 35},
	{"plain yogurt, whole", 3.8, 1.6, 4.5, 51},
	{"mozzarella cheese", 22.7, 3.0, 25.2, 330},
	{"olive oil", 0.0, 0.0, 100.0, 884},
	{"peanut butter", 22.5, 18.8, 50.0, 589},
	{"lentils, cooked", 6.3, 16.3, 0.5, 93},
	{"broccoli, steamed", 2.1, 4.4, 0.5, 25},
	{"avocado", 1.2, 6.0, 8.4, 96},
	{"quinoa, cooked", 4.4, 21.3, 1.9, 120},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for _, f := range bundledFoods {
		if _, err := db.Exec(`
INSERT OR IGNORE INTO food_reference(name, protein_per_100g, carbs_per_100g, fat_per_100g, calories_per_100g, source)
VALUES(?, ?, ?, ?, ?, 'bundled')
`, f.name, f.protein, f.carbs, f.fat, f.calories); err != nil {
			return fmt.Errorf("seed reference food %s: %w", f.name, err)
		}
	}

	return nil
}

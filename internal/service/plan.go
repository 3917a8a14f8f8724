package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
	"github.com/jandersaraiva/nutrivida/internal/model"
)

type PlanInput struct {
	PatientID int64
	Name      string
	WaterML   int
	Notes     string
}

type MealInput struct {
	PlanID    int64
	Name      string
	TimeOfDay string
	IsFree    bool
	Position  int
}

type FoodItemInput struct {
	MealID   int64
	Name     string
	Quantity string
	ProteinG float64
	CarbsG   float64
	FatG     float64
	Calories int
	Position int
}

func CreatePlan(db *sql.DB, in PlanInput) (int64, error) {
	if _, err := GetPatient(db, in.PatientID); err != nil {
		return 0, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("plan name is required")
	}
	if err := validateNonNegativeInt("water target", in.WaterML); err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO diet_plans(patient_id, name, water_ml, notes)
VALUES(?, ?, ?, ?)
`, in.PatientID, in.Name, in.WaterML, strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("insert diet plan: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted plan id: %w", err)
	}
	return id, nil
}

func GetPlan(db *sql.DB, id int64) (*model.DietPlan, error) {
	if id <= 0 {
		return nil, fmt.Errorf("plan id must be > 0")
	}
	var p model.DietPlan
	var notes sql.NullString
	err := db.QueryRow(`
SELECT id, patient_id, name, water_ml, IFNULL(notes, ''), created_at, updated_at
FROM diet_plans
WHERE id = ?
`, id).Scan(&p.ID, &p.PatientID, &p.Name, &p.WaterML, &notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("diet plan %d not found", id)
		}
		return nil, fmt.Errorf("load diet plan %d: %w", id, err)
	}
	p.Notes = notes.String
	return &p, nil
}

func ListPlans(db *sql.DB, patientID int64) ([]model.DietPlan, error) {
	if patientID <= 0 {
		return nil, fmt.Errorf("patient id must be > 0")
	}
	rows, err := db.Query(`
SELECT id, patient_id, name, water_ml, IFNULL(notes, ''), created_at, updated_at
FROM diet_plans
WHERE patient_id = ?
ORDER BY created_at DESC
`, patientID)
	if err != nil {
		return nil, fmt.Errorf("list diet plans: %w", err)
	}
	defer rows.Close()

	items := make([]model.DietPlan, 0)
	for rows.Next() {
		var p model.DietPlan
		var notes sql.NullString
		if err := rows.Scan(&p.ID, &p.PatientID, &p.Name, &p.WaterML, &notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan diet plan: %w", err)
		}
		p.Notes = notes.String
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diet plans: %w", err)
	}
	return items, nil
}

func UpdatePlan(db *sql.DB, id int64, in PlanInput) error {
	if id <= 0 {
		return fmt.Errorf("plan id must be > 0")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if err := validateNonNegativeInt("water target", in.WaterML); err != nil {
		return err
	}
	res, err := db.Exec(`
UPDATE diet_plans
SET name = ?, water_ml = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.Name, in.WaterML, strings.TrimSpace(in.Notes), id)
	if err != nil {
		return fmt.Errorf("update diet plan %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("diet plan %d not found", id)
	}
	return nil
}

func DeletePlan(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("plan id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM diet_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete diet plan %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("diet plan %d not found", id)
	}
	return nil
}

func AddMeal(db *sql.DB, in MealInput) (int64, error) {
	if _, err := GetPlan(db, in.PlanID); err != nil {
		return 0, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, fmt.Errorf("meal name is required")
	}
	res, err := db.Exec(`
INSERT INTO meals(plan_id, position, name, time_of_day, is_free)
VALUES(?, ?, ?, ?, ?)
`, in.PlanID, in.Position, in.Name, strings.TrimSpace(in.TimeOfDay), boolToInt(in.IsFree))
	if err != nil {
		return 0, fmt.Errorf("insert meal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted meal id: %w", err)
	}
	return id, nil
}

func GetMeal(db *sql.DB, id int64) (*model.Meal, error) {
	if id <= 0 {
		return nil, fmt.Errorf("meal id must be > 0")
	}
	var m model.Meal
	var isFree int
	err := db.QueryRow(`
SELECT id, plan_id, position, name, time_of_day, is_free
FROM meals
WHERE id = ?
`, id).Scan(&m.ID, &m.PlanID, &m.Position, &m.Name, &m.TimeOfDay, &isFree)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("meal %d not found", id)
		}
		return nil, fmt.Errorf("load meal %d: %w", id, err)
	}
	m.IsFree = isFree != 0
	return &m, nil
}

func UpdateMeal(db *sql.DB, id int64, in MealInput) error {
	if id <= 0 {
		return fmt.Errorf("meal id must be > 0")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("meal name is required")
	}
	res, err := db.Exec(`
UPDATE meals
SET position = ?, name = ?, time_of_day = ?, is_free = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.Position, in.Name, strings.TrimSpace(in.TimeOfDay), boolToInt(in.IsFree), id)
	if err != nil {
		return fmt.Errorf("update meal %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %d not found", id)
	}
	return nil
}

func DeleteMeal(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("meal id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("meal %d not found", id)
	}
	return nil
}

// AddFoodItem stores one meal line. A reference-table match on the name
// auto-fills macros scaled by the quantity; without a match the input macros
// stand, with calories derived via Atwater when they were left out.
func AddFoodItem(db *sql.DB, in FoodItemInput) (int64, error) {
	if in.MealID <= 0 {
		return 0, fmt.Errorf("meal id must be > 0")
	}
	item, err := resolveFoodItem(db, in)
	if err != nil {
		return 0, err
	}
	res, err := db.Exec(`
INSERT INTO food_items(meal_id, position, name, quantity, protein_g, carbs_g, fat_g, calories)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, in.MealID, in.Position, item.Name, item.Quantity, item.ProteinG, item.CarbsG, item.FatG, item.Calories)
	if err != nil {
		return 0, fmt.Errorf("insert food item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve inserted food item id: %w", err)
	}
	return id, nil
}

func GetFoodItem(db *sql.DB, id int64) (*model.FoodItem, error) {
	if id <= 0 {
		return nil, fmt.Errorf("food item id must be > 0")
	}
	var it model.FoodItem
	err := db.QueryRow(`
SELECT id, meal_id, position, name, quantity, protein_g, carbs_g, fat_g, calories
FROM food_items
WHERE id = ?
`, id).Scan(&it.ID, &it.MealID, &it.Position, &it.Name, &it.Quantity, &it.ProteinG, &it.CarbsG, &it.FatG, &it.Calories)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("food item %d not found", id)
		}
		return nil, fmt.Errorf("load food item %d: %w", id, err)
	}
	return &it, nil
}

// UpdateFoodItem applies the same auto-fill rules as AddFoodItem: a name or
// quantity change re-resolves against the reference table; direct macro
// edits only re-derive the calorie field.
func UpdateFoodItem(db *sql.DB, id int64, in FoodItemInput) error {
	if id <= 0 {
		return fmt.Errorf("food item id must be > 0")
	}
	item, err := resolveFoodItem(db, in)
	if err != nil {
		return err
	}
	res, err := db.Exec(`
UPDATE food_items
SET position = ?, name = ?, quantity = ?, protein_g = ?, carbs_g = ?, fat_g = ?, calories = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.Position, item.Name, item.Quantity, item.ProteinG, item.CarbsG, item.FatG, item.Calories, id)
	if err != nil {
		return fmt.Errorf("update food item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("food item %d not found", id)
	}
	return nil
}

func DeleteFoodItem(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("food item id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM food_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete food item %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("food item %d not found", id)
	}
	return nil
}

// LoadPlanMeals returns a plan's meals in position order, items included.
func LoadPlanMeals(db *sql.DB, planID int64) ([]model.Meal, error) {
	if planID <= 0 {
		return nil, fmt.Errorf("plan id must be > 0")
	}
	rows, err := db.Query(`
SELECT id, plan_id, position, name, time_of_day, is_free
FROM meals
WHERE plan_id = ?
ORDER BY position ASC, id ASC
`, planID)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	meals := make([]model.Meal, 0)
	for rows.Next() {
		var m model.Meal
		var isFree int
		if err := rows.Scan(&m.ID, &m.PlanID, &m.Position, &m.Name, &m.TimeOfDay, &isFree); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		m.IsFree = isFree != 0
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meals: %w", err)
	}

	for i := range meals {
		items, err := loadMealItems(db, meals[i].ID)
		if err != nil {
			return nil, err
		}
		meals[i].Items = items
	}
	return meals, nil
}

// SummarizePlan aggregates a stored plan with the patient's latest recorded
// weight (70 kg fallback when there is no check-in yet).
func SummarizePlan(db *sql.DB, planID int64) (*metrics.PlanSummary, error) {
	plan, err := GetPlan(db, planID)
	if err != nil {
		return nil, err
	}
	meals, err := LoadPlanMeals(db, planID)
	if err != nil {
		return nil, err
	}
	var weightKg float64
	latest, err := LatestCheckIn(db, plan.PatientID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		weightKg = latest.WeightKg
	}
	summary := metrics.SummarizePlan(meals, weightKg)
	return &summary, nil
}

func loadMealItems(db *sql.DB, mealID int64) ([]model.FoodItem, error) {
	rows, err := db.Query(`
SELECT id, meal_id, position, name, quantity, protein_g, carbs_g, fat_g, calories
FROM food_items
WHERE meal_id = ?
ORDER BY position ASC, id ASC
`, mealID)
	if err != nil {
		return nil, fmt.Errorf("list food items: %w", err)
	}
	defer rows.Close()

	items := make([]model.FoodItem, 0)
	for rows.Next() {
		var it model.FoodItem
		if err := rows.Scan(&it.ID, &it.MealID, &it.Position, &it.Name, &it.Quantity, &it.ProteinG, &it.CarbsG, &it.FatG, &it.Calories); err != nil {
			return nil, fmt.Errorf("scan food item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food items: %w", err)
	}
	return items, nil
}

func resolveFoodItem(db *sql.DB, in FoodItemInput) (model.FoodItem, error) {
	item := model.FoodItem{
		Name:     strings.TrimSpace(in.Name),
		Quantity: strings.TrimSpace(in.Quantity),
		ProteinG: in.ProteinG,
		CarbsG:   in.CarbsG,
		FatG:     in.FatG,
		Calories: in.Calories,
	}
	if item.Name == "" {
		return model.FoodItem{}, fmt.Errorf("food item name is required")
	}
	if err := validateNonNegativeFloat("protein", item.ProteinG); err != nil {
		return model.FoodItem{}, err
	}
	if err := validateNonNegativeFloat("carbs", item.CarbsG); err != nil {
		return model.FoodItem{}, err
	}
	if err := validateNonNegativeFloat("fat", item.FatG); err != nil {
		return model.FoodItem{}, err
	}
	if err := validateNonNegativeInt("calories", item.Calories); err != nil {
		return model.FoodItem{}, err
	}

	table, err := LoadReferenceTable(db)
	if err != nil {
		return model.FoodItem{}, err
	}
	if filled, ok := metrics.AutoFill(item, table); ok {
		return filled, nil
	}
	if item.Calories == 0 {
		item.Calories = metrics.ItemCalories(item)
	}
	return item, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

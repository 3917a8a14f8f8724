package model

import "time"

type Patient struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	BirthDate  string     `json:"birth_date,omitempty"`
	Sex        string     `json:"sex"`
	Phone      string     `json:"phone,omitempty"`
	Email      string     `json:"email,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CheckIn is one body-composition snapshot. Height and weight gate every
// derived metric; the remaining fields default to zero and derivations
// short-circuit when they are absent.
type CheckIn struct {
	ID           int64              `json:"id"`
	PatientID    int64              `json:"patient_id"`
	CheckedAt    time.Time          `json:"checked_at"`
	HeightM      float64            `json:"height_m"`
	WeightKg     float64            `json:"weight_kg"`
	BodyFatPct   float64            `json:"body_fat_pct,omitempty"`
	MusclePct    float64            `json:"muscle_pct,omitempty"`
	VisceralFat  float64            `json:"visceral_fat,omitempty"`
	BMRKcal      int                `json:"bmr_kcal,omitempty"`
	BodyAgeYears int                `json:"body_age_years,omitempty"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
	Notes        string             `json:"notes,omitempty"`
}

type Appointment struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	DurationMin int       `json:"duration_min"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
}

type DietPlan struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patient_id"`
	Name      string    `json:"name"`
	WaterML   int       `json:"water_ml,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Meal struct {
	ID        int64      `json:"id"`
	PlanID    int64      `json:"plan_id"`
	Position  int        `json:"position"`
	Name      string     `json:"name"`
	TimeOfDay string     `json:"time_of_day,omitempty"`
	IsFree    bool       `json:"is_free,omitempty"`
	Items     []FoodItem `json:"items,omitempty"`
}

type FoodItem struct {
	ID       int64   `json:"id"`
	MealID   int64   `json:"meal_id"`
	Position int     `json:"position"`
	Name     string  `json:"name"`
	Quantity string  `json:"quantity,omitempty"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Calories int     `json:"calories"`
}

type FoodReferenceEntry struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	Source          string  `json:"source,omitempty"`
}

type ClinicUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	DisplayName  string    `json:"display_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

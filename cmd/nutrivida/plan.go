package nutrivida

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage diet plans, meals, and food items",
}

var (
	planName    string
	planWaterML int
	planNotes   string
)

var planCreateCmd = &cobra.Command{
	Use:   "create <patient-id>",
	Short: "Create a diet plan for a patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreatePlan(sqldb, service.PlanInput{
				PatientID: patientID,
				Name:      planName,
				WaterML:   planWaterML,
				Notes:     planNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %d\n", id)
			return nil
		})
	},
}

var planListCmd = &cobra.Command{
	Use:   "list <patient-id>",
	Short: "List a patient's diet plans",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			plans, err := service.ListPlans(sqldb, patientID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tWATER(ML)\tCREATED")
			for _, p := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.WaterML, p.CreatedAt.Local().Format("2006-01-02"))
			}
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <plan-id>",
	Short: "Show a plan with its meals and items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			plan, err := service.GetPlan(sqldb, planID)
			if err != nil {
				return err
			}
			meals, err := service.LoadPlanMeals(sqldb, planID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan %d: %s\n", plan.ID, plan.Name)
			if plan.WaterML > 0 {
				fmt.Fprintf(out, "Water: %d ml/day\n", plan.WaterML)
			}
			if plan.Notes != "" {
				fmt.Fprintf(out, "Notes: %s\n", plan.Notes)
			}
			for _, meal := range meals {
				label := meal.Name
				if meal.TimeOfDay != "" {
					label = fmt.Sprintf("%s (%s)", meal.Name, meal.TimeOfDay)
				}
				if meal.IsFree {
					label += " [free meal]"
				}
				fmt.Fprintf(out, "\n%s\n", label)
				for _, item := range meal.Items {
					fmt.Fprintf(out, "  %d. %s %s\t%d kcal\tP %.1f\tC %.1f\tF %.1f\n",
						item.ID, item.Name, item.Quantity, item.Calories, item.ProteinG, item.CarbsG, item.FatG)
				}
			}
			return nil
		})
	},
}

var planUpdateCmd = &cobra.Command{
	Use:   "update <plan-id>",
	Short: "Update a plan's name, water target, or notes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			current, err := service.GetPlan(sqldb, planID)
			if err != nil {
				return err
			}
			in := service.PlanInput{
				PatientID: current.PatientID,
				Name:      current.Name,
				WaterML:   current.WaterML,
				Notes:     current.Notes,
			}
			if cmd.Flags().Changed("name") {
				in.Name = planName
			}
			if cmd.Flags().Changed("water") {
				in.WaterML = planWaterML
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = planNotes
			}
			if err := service.UpdatePlan(sqldb, planID, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated plan %d\n", planID)
			return nil
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <plan-id>",
	Short: "Delete a plan and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeletePlan(sqldb, planID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %d\n", planID)
			return nil
		})
	},
}

var planSummaryCmd = &cobra.Command{
	Use:   "summary <plan-id>",
	Short: "Show plan calorie and macro totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			s, err := service.SummarizePlan(sqldb, planID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Calories: %d kcal\n", s.TotalCalories)
			fmt.Fprintf(out, "Protein: %.1f g (%.1f%%, %.1f g/kg)\n", s.TotalProteinG, s.PercentProtein, s.GramsPerKgProt)
			fmt.Fprintf(out, "Carbs: %.1f g (%.1f%%, %.1f g/kg)\n", s.TotalCarbsG, s.PercentCarbs, s.GramsPerKgCarbs)
			fmt.Fprintf(out, "Fats: %.1f g (%.1f%%, %.1f g/kg)\n", s.TotalFatsG, s.PercentFats, s.GramsPerKgFats)
			if s.UsedDefaultWt {
				fmt.Fprintf(out, "Note: no check-in on record, g/kg uses the %.0f kg default\n", s.PatientWeightKg)
			} else {
				fmt.Fprintf(out, "Patient weight: %.1f kg\n", s.PatientWeightKg)
			}
			if s.ExcludedFreeMeal {
				fmt.Fprintln(out, "Free meals excluded from totals")
			}
			return nil
		})
	},
}

var (
	mealName   string
	mealTime   string
	mealIsFree bool
	mealPos    int
)

var planMealAddCmd = &cobra.Command{
	Use:   "meal-add <plan-id>",
	Short: "Add a meal to a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		planID, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddMeal(sqldb, service.MealInput{
				PlanID:    planID,
				Name:      mealName,
				TimeOfDay: mealTime,
				IsFree:    mealIsFree,
				Position:  mealPos,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added meal %d\n", id)
			return nil
		})
	},
}

var planMealUpdateCmd = &cobra.Command{
	Use:   "meal-update <meal-id>",
	Short: "Update a meal's name, time, order, or free flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealID, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			current, err := service.GetMeal(sqldb, mealID)
			if err != nil {
				return err
			}
			in := service.MealInput{
				PlanID:    current.PlanID,
				Name:      current.Name,
				TimeOfDay: current.TimeOfDay,
				IsFree:    current.IsFree,
				Position:  current.Position,
			}
			if cmd.Flags().Changed("name") {
				in.Name = mealName
			}
			if cmd.Flags().Changed("time") {
				in.TimeOfDay = mealTime
			}
			if cmd.Flags().Changed("free") {
				in.IsFree = mealIsFree
			}
			if cmd.Flags().Changed("position") {
				in.Position = mealPos
			}
			if err := service.UpdateMeal(sqldb, mealID, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated meal %d\n", mealID)
			return nil
		})
	},
}

var planMealDeleteCmd = &cobra.Command{
	Use:   "meal-delete <meal-id>",
	Short: "Remove a meal and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealID, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteMeal(sqldb, mealID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %d\n", mealID)
			return nil
		})
	},
}

var (
	itemName     string
	itemQuantity string
	itemProtein  string
	itemCarbs    string
	itemFat      string
	itemCalories int
	itemPos      int
)

var planItemAddCmd = &cobra.Command{
	Use:   "item-add <meal-id>",
	Short: "Add a food item to a meal (macros auto-fill from the reference table)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealID, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			in := service.FoodItemInput{
				MealID:   mealID,
				Name:     itemName,
				Quantity: itemQuantity,
				Calories: itemCalories,
				Position: itemPos,
			}
			var err error
			if in.ProteinG, err = parseMeasure("protein", itemProtein); err != nil {
				return err
			}
			if in.CarbsG, err = parseMeasure("carbs", itemCarbs); err != nil {
				return err
			}
			if in.FatG, err = parseMeasure("fat", itemFat); err != nil {
				return err
			}
			id, err := service.AddFoodItem(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food item %d\n", id)
			return nil
		})
	},
}

var planItemUpdateCmd = &cobra.Command{
	Use:   "item-update <item-id>",
	Short: "Update a food item; reference matches re-scale to the new quantity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseInt64Arg("item id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			current, err := service.GetFoodItem(sqldb, itemID)
			if err != nil {
				return err
			}
			in := service.FoodItemInput{
				MealID:   current.MealID,
				Name:     current.Name,
				Quantity: current.Quantity,
				ProteinG: current.ProteinG,
				CarbsG:   current.CarbsG,
				FatG:     current.FatG,
				Calories: current.Calories,
				Position: current.Position,
			}
			macroChanged := false
			if cmd.Flags().Changed("name") {
				in.Name = itemName
			}
			if cmd.Flags().Changed("quantity") {
				in.Quantity = itemQuantity
			}
			if cmd.Flags().Changed("protein") {
				if in.ProteinG, err = parseMeasure("protein", itemProtein); err != nil {
					return err
				}
				macroChanged = true
			}
			if cmd.Flags().Changed("carbs") {
				if in.CarbsG, err = parseMeasure("carbs", itemCarbs); err != nil {
					return err
				}
				macroChanged = true
			}
			if cmd.Flags().Changed("fat") {
				if in.FatG, err = parseMeasure("fat", itemFat); err != nil {
					return err
				}
				macroChanged = true
			}
			if cmd.Flags().Changed("calories") {
				in.Calories = itemCalories
			} else if macroChanged {
				// A macro edit without explicit calories re-derives them.
				in.Calories = 0
			}
			if cmd.Flags().Changed("position") {
				in.Position = itemPos
			}
			if err := service.UpdateFoodItem(sqldb, itemID, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated food item %d\n", itemID)
			return nil
		})
	},
}

var planItemDeleteCmd = &cobra.Command{
	Use:   "item-delete <item-id>",
	Short: "Remove a food item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		itemID, err := parseInt64Arg("item id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteFoodItem(sqldb, itemID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted food item %d\n", itemID)
			return nil
		})
	},
}

func init() {
	planCreateCmd.Flags().StringVar(&planName, "name", "", "Plan name (required)")
	planCreateCmd.Flags().IntVar(&planWaterML, "water", 0, "Daily water target in ml")
	planCreateCmd.Flags().StringVar(&planNotes, "notes", "", "Free-form notes")
	_ = planCreateCmd.MarkFlagRequired("name")

	planMealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name (required)")
	planMealAddCmd.Flags().StringVar(&mealTime, "time", "", "Suggested time of day (HH:MM)")
	planMealAddCmd.Flags().BoolVar(&mealIsFree, "free", false, "Mark as a free meal, excluded from totals")
	planMealAddCmd.Flags().IntVar(&mealPos, "position", 0, "Order within the plan")
	_ = planMealAddCmd.MarkFlagRequired("name")

	planItemAddCmd.Flags().StringVar(&itemName, "name", "", "Food name (required)")
	planItemAddCmd.Flags().StringVar(&itemQuantity, "quantity", "", "Quantity, e.g. 150g or 2 slices")
	planItemAddCmd.Flags().StringVar(&itemProtein, "protein", "", "Protein grams")
	planItemAddCmd.Flags().StringVar(&itemCarbs, "carbs", "", "Carb grams")
	planItemAddCmd.Flags().StringVar(&itemFat, "fat", "", "Fat grams")
	planItemAddCmd.Flags().IntVar(&itemCalories, "calories", 0, "Calories (computed from macros when omitted)")
	planItemAddCmd.Flags().IntVar(&itemPos, "position", 0, "Order within the meal")
	_ = planItemAddCmd.MarkFlagRequired("name")

	planUpdateCmd.Flags().StringVar(&planName, "name", "", "Plan name")
	planUpdateCmd.Flags().IntVar(&planWaterML, "water", 0, "Daily water target in ml")
	planUpdateCmd.Flags().StringVar(&planNotes, "notes", "", "Free-form notes")

	planMealUpdateCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	planMealUpdateCmd.Flags().StringVar(&mealTime, "time", "", "Suggested time of day (HH:MM)")
	planMealUpdateCmd.Flags().BoolVar(&mealIsFree, "free", false, "Mark as a free meal, excluded from totals")
	planMealUpdateCmd.Flags().IntVar(&mealPos, "position", 0, "Order within the plan")

	planItemUpdateCmd.Flags().StringVar(&itemName, "name", "", "Food name")
	planItemUpdateCmd.Flags().StringVar(&itemQuantity, "quantity", "", "Quantity, e.g. 150g or 2 slices")
	planItemUpdateCmd.Flags().StringVar(&itemProtein, "protein", "", "Protein grams")
	planItemUpdateCmd.Flags().StringVar(&itemCarbs, "carbs", "", "Carb grams")
	planItemUpdateCmd.Flags().StringVar(&itemFat, "fat", "", "Fat grams")
	planItemUpdateCmd.Flags().IntVar(&itemCalories, "calories", 0, "Calories (computed from macros when omitted)")
	planItemUpdateCmd.Flags().IntVar(&itemPos, "position", 0, "Order within the meal")

	planCmd.AddCommand(planCreateCmd)
	planCmd.AddCommand(planListCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planUpdateCmd)
	planCmd.AddCommand(planDeleteCmd)
	planCmd.AddCommand(planSummaryCmd)
	planCmd.AddCommand(planMealAddCmd)
	planCmd.AddCommand(planMealUpdateCmd)
	planCmd.AddCommand(planMealDeleteCmd)
	planCmd.AddCommand(planItemAddCmd)
	planCmd.AddCommand(planItemUpdateCmd)
	planCmd.AddCommand(planItemDeleteCmd)
	rootCmd.AddCommand(planCmd)
}

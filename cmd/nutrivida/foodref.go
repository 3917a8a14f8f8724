package nutrivida

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/provider/openfoodfacts"
	"github.com/jandersaraiva/nutrivida/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the per-100g food reference table",
}

var (
	foodListQuery string
	foodListLimit int
)

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reference foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.ListReferenceFoods(sqldb, foodListQuery, foodListLimit)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tP/100G\tC/100G\tF/100G\tKCAL/100G\tSOURCE")
			for _, f := range foods {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.1f\t%.1f\t%.1f\t%.0f\t%s\n",
					f.Name, f.ProteinPer100g, f.CarbsPer100g, f.FatPer100g, f.CaloriesPer100g, f.Source)
			}
			return nil
		})
	},
}

var (
	foodProtein  string
	foodCarbs    string
	foodFat      string
	foodCalories string
)

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or overwrite a reference food (per 100 g)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ReferenceFoodInput{Name: args[0]}
		var err error
		if in.ProteinPer100g, err = parseMeasure("protein", foodProtein); err != nil {
			return err
		}
		if in.CarbsPer100g, err = parseMeasure("carbs", foodCarbs); err != nil {
			return err
		}
		if in.FatPer100g, err = parseMeasure("fat", foodFat); err != nil {
			return err
		}
		if in.CaloriesPer100g, err = parseMeasure("calories", foodCalories); err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if _, err := service.AddReferenceFood(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved reference food %q\n", in.Name)
			return nil
		})
	},
}

var foodDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a reference food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteReferenceFood(sqldb, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted reference food %q\n", args[0])
			return nil
		})
	},
}

var (
	foodFetchLimit int
	foodFetchSave  bool
)

var foodFetchCmd = &cobra.Command{
	Use:   "fetch <query>",
	Short: "Search Open Food Facts for per-100g data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			client := &openfoodfacts.Client{}
			if ua, ok, err := service.GetConfig(sqldb, service.ConfigFoodFetchUserAgent); err == nil && ok {
				client.UserAgent = ua
			}

			results, err := client.SearchFoods(cmd.Context(), args[0], foodFetchLimit)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "NAME\tBRAND\tP/100G\tC/100G\tF/100G\tKCAL/100G")
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\t%.1f\t%.1f\t%.0f\n",
					r.Name, r.Brand, r.ProteinPer100g, r.CarbsPer100g, r.FatPer100g, r.CaloriesPer100g)
			}

			if !foodFetchSave || len(results) == 0 {
				return nil
			}
			top := results[0]
			if _, err := service.AddReferenceFood(sqldb, service.ReferenceFoodInput{
				Name:            top.Name,
				ProteinPer100g:  top.ProteinPer100g,
				CarbsPer100g:    top.CarbsPer100g,
				FatPer100g:      top.FatPer100g,
				CaloriesPer100g: top.CaloriesPer100g,
				Source:          "openfoodfacts",
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q to the reference table\n", top.Name)
			return nil
		})
	},
}

func init() {
	foodListCmd.Flags().StringVar(&foodListQuery, "query", "", "Filter by name substring")
	foodListCmd.Flags().IntVar(&foodListLimit, "limit", 0, "Max rows")

	foodAddCmd.Flags().StringVar(&foodProtein, "protein", "", "Protein grams per 100 g")
	foodAddCmd.Flags().StringVar(&foodCarbs, "carbs", "", "Carb grams per 100 g")
	foodAddCmd.Flags().StringVar(&foodFat, "fat", "", "Fat grams per 100 g")
	foodAddCmd.Flags().StringVar(&foodCalories, "calories", "", "Calories per 100 g")

	foodFetchCmd.Flags().IntVar(&foodFetchLimit, "limit", 5, "Max results")
	foodFetchCmd.Flags().BoolVar(&foodFetchSave, "save", false, "Save the top result to the reference table")

	foodCmd.AddCommand(foodListCmd)
	foodCmd.AddCommand(foodAddCmd)
	foodCmd.AddCommand(foodDeleteCmd)
	foodCmd.AddCommand(foodFetchCmd)
	rootCmd.AddCommand(foodCmd)
}

package nutrivida

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
	"github.com/jandersaraiva/nutrivida/internal/service"
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record and review body-composition check-ins",
}

var (
	checkinHeight   string
	checkinWeight   string
	checkinBodyFat  string
	checkinMuscle   string
	checkinVisceral string
	checkinBMR      int
	checkinBodyAge  int
	checkinMeasures []string
	checkinDate     string
	checkinTime     string
	checkinNotes    string
)

func buildCheckInInput(patientID int64) (service.CheckInInput, error) {
	in := service.CheckInInput{
		PatientID:    patientID,
		BMRKcal:      checkinBMR,
		BodyAgeYears: checkinBodyAge,
		Notes:        checkinNotes,
	}
	var err error
	if in.HeightM, err = parseMeasure("height", checkinHeight); err != nil {
		return in, err
	}
	if in.WeightKg, err = parseMeasure("weight", checkinWeight); err != nil {
		return in, err
	}
	if in.BodyFatPct, err = parseMeasure("body fat", checkinBodyFat); err != nil {
		return in, err
	}
	if in.MusclePct, err = parseMeasure("muscle", checkinMuscle); err != nil {
		return in, err
	}
	if in.VisceralFat, err = parseMeasure("visceral fat", checkinVisceral); err != nil {
		return in, err
	}
	if len(checkinMeasures) > 0 {
		in.Measurements = make(map[string]float64, len(checkinMeasures))
		for _, raw := range checkinMeasures {
			key, value, found := strings.Cut(raw, "=")
			if !found {
				return in, fmt.Errorf("invalid --measure %q (expected name=value)", raw)
			}
			v, err := parseMeasure(key, value)
			if err != nil {
				return in, err
			}
			in.Measurements[key] = v
		}
	}
	return in, nil
}

var checkinAddCmd = &cobra.Command{
	Use:   "add <patient-id>",
	Short: "Record a check-in for a patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		checkedAt, err := parseDateTimeOrNow(checkinDate, checkinTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			in, err := buildCheckInInput(patientID)
			if err != nil {
				return err
			}
			in.CheckedAt = checkedAt
			id, err := service.AddCheckIn(sqldb, in)
			if err != nil {
				return err
			}
			ci, err := service.GetCheckIn(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added check-in %d", id)
			if ci.BMRKcal > 0 && checkinBMR == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (computed BMR %d kcal)", ci.BMRKcal)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		})
	},
}

var (
	checkinListDate string
	checkinListFrom string
	checkinListTo   string
	checkinListN    int
)

var checkinListCmd = &cobra.Command{
	Use:   "list <patient-id>",
	Short: "List check-ins with derived metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			views, err := service.ListCheckInViews(sqldb, service.CheckInFilter{
				PatientID: patientID,
				Date:      checkinListDate,
				FromDate:  checkinListFrom,
				ToDate:    checkinListTo,
				Limit:     checkinListN,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT\tBMI\tBAND\tFAT%\tMUSCLE%\tSCORE\tTEE")
			for _, v := range views {
				score := "-"
				if v.Derived.HealthScore != nil {
					score = fmt.Sprintf("%d", *v.Derived.HealthScore)
				}
				tee := "-"
				if v.TEEKcal > 0 {
					tee = fmt.Sprintf("%d", v.TEEKcal)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.1f\t%.1f\t%s\t%.1f\t%.1f\t%s\t%s\n",
					v.CheckIn.ID,
					v.CheckIn.CheckedAt.Local().Format("2006-01-02"),
					v.CheckIn.WeightKg,
					v.Derived.BMI,
					v.Derived.BMIBand,
					v.CheckIn.BodyFatPct,
					v.CheckIn.MusclePct,
					score,
					tee)
			}
			return nil
		})
	},
}

var checkinShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one check-in in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("check-in id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			ci, err := service.GetCheckIn(sqldb, id)
			if err != nil {
				return err
			}
			patient, err := service.GetPatient(sqldb, ci.PatientID)
			if err != nil {
				return err
			}
			derived := metrics.DeriveCheckIn(*ci, service.PatientSex(patient))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Check-in %d for %s (%s)\n", ci.ID, patient.Name, ci.CheckedAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "Height: %.2f m\tWeight: %.1f kg\n", ci.HeightM, ci.WeightKg)
			if ci.BodyFatPct > 0 || ci.MusclePct > 0 {
				fmt.Fprintf(out, "Body fat: %.1f%%\tMuscle: %.1f%%\tVisceral: %.1f\n", ci.BodyFatPct, ci.MusclePct, ci.VisceralFat)
			}
			if ci.BMRKcal > 0 {
				fmt.Fprintf(out, "BMR: %d kcal\n", ci.BMRKcal)
				factor, level := service.DefaultActivity(sqldb)
				if level != "" {
					fmt.Fprintf(out, "TEE: %d kcal (%s, x%.3g)\n", metrics.TEE(ci.BMRKcal, factor), level, factor)
				} else {
					fmt.Fprintf(out, "TEE: %d kcal (x%.3g)\n", metrics.TEE(ci.BMRKcal, factor), factor)
				}
			}
			if ci.BodyAgeYears > 0 {
				fmt.Fprintf(out, "Body age: %d\n", ci.BodyAgeYears)
			}
			if derived.BMI > 0 {
				fmt.Fprintf(out, "BMI: %.1f (%s)\n", derived.BMI, derived.BMIBand)
			}
			if derived.FatMassKg > 0 || derived.LeanMassKg > 0 {
				fmt.Fprintf(out, "Fat mass: %.1f kg\tLean mass: %.1f kg\tResidual: %.1f kg\n", derived.FatMassKg, derived.LeanMassKg, derived.ResidualMassKg)
			}
			if derived.WaistHipRatio != nil {
				fmt.Fprintf(out, "Waist/hip: %.2f\n", *derived.WaistHipRatio)
			}
			if derived.HealthScore != nil {
				fmt.Fprintf(out, "Health score: %d/100\n", *derived.HealthScore)
			}
			if len(ci.Measurements) > 0 {
				fmt.Fprintln(out, "Measurements:")
				for key, value := range ci.Measurements {
					fmt.Fprintf(out, "  %s: %.1f cm\n", key, value)
				}
			}
			if ci.Notes != "" {
				fmt.Fprintf(out, "Notes: %s\n", ci.Notes)
			}
			return nil
		})
	},
}

var (
	editHeight   string
	editWeight   string
	editBodyFat  string
	editMuscle   string
	editVisceral string
	editBMR      int
	editBodyAge  int
	editMeasures []string
	editDate     string
	editTime     string
	editNotes    string
)

var checkinEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a check-in; derived numbers follow the new values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("check-in id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			existing, err := service.GetCheckIn(sqldb, id)
			if err != nil {
				return err
			}
			in := service.CheckInInput{
				PatientID:    existing.PatientID,
				CheckedAt:    existing.CheckedAt,
				HeightM:      existing.HeightM,
				WeightKg:     existing.WeightKg,
				BodyFatPct:   existing.BodyFatPct,
				MusclePct:    existing.MusclePct,
				VisceralFat:  existing.VisceralFat,
				BMRKcal:      existing.BMRKcal,
				BodyAgeYears: existing.BodyAgeYears,
				Measurements: existing.Measurements,
				Notes:        existing.Notes,
			}
			bodyChanged := false
			if cmd.Flags().Changed("height") {
				if in.HeightM, err = parseMeasure("height", editHeight); err != nil {
					return err
				}
				bodyChanged = true
			}
			if cmd.Flags().Changed("weight") {
				if in.WeightKg, err = parseMeasure("weight", editWeight); err != nil {
					return err
				}
				bodyChanged = true
			}
			if cmd.Flags().Changed("body-fat") {
				if in.BodyFatPct, err = parseMeasure("body fat", editBodyFat); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("muscle") {
				if in.MusclePct, err = parseMeasure("muscle", editMuscle); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("visceral") {
				if in.VisceralFat, err = parseMeasure("visceral fat", editVisceral); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("bmr") {
				in.BMRKcal = editBMR
			} else if bodyChanged {
				// Height/weight changed without an explicit BMR: recompute
				// rather than keep a value derived from the old body.
				in.BMRKcal = 0
			}
			if cmd.Flags().Changed("body-age") {
				in.BodyAgeYears = editBodyAge
			}
			if cmd.Flags().Changed("measure") {
				in.Measurements = make(map[string]float64, len(editMeasures))
				for _, raw := range editMeasures {
					key, value, found := strings.Cut(raw, "=")
					if !found {
						return fmt.Errorf("invalid --measure %q (expected name=value)", raw)
					}
					v, err := parseMeasure(key, value)
					if err != nil {
						return err
					}
					in.Measurements[key] = v
				}
			}
			if cmd.Flags().Changed("date") || cmd.Flags().Changed("time") {
				at, err := parseDateTimeOrNow(editDate, editTime)
				if err != nil {
					return err
				}
				in.CheckedAt = at
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = editNotes
			}
			if err := service.UpdateCheckIn(sqldb, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated check-in %d\n", id)
			return nil
		})
	},
}

var checkinDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a check-in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("check-in id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteCheckIn(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted check-in %d\n", id)
			return nil
		})
	},
}

func init() {
	checkinAddCmd.Flags().StringVar(&checkinHeight, "height", "", "Height in meters, e.g. 1.75 or 1,75 (required)")
	checkinAddCmd.Flags().StringVar(&checkinWeight, "weight", "", "Weight in kg, e.g. 62,5 (required)")
	checkinAddCmd.Flags().StringVar(&checkinBodyFat, "body-fat", "", "Body fat percent")
	checkinAddCmd.Flags().StringVar(&checkinMuscle, "muscle", "", "Muscle percent")
	checkinAddCmd.Flags().StringVar(&checkinVisceral, "visceral", "", "Visceral fat rating")
	checkinAddCmd.Flags().IntVar(&checkinBMR, "bmr", 0, "Device-reported BMR in kcal (computed when omitted)")
	checkinAddCmd.Flags().IntVar(&checkinBodyAge, "body-age", 0, "Device-reported body age")
	checkinAddCmd.Flags().StringSliceVar(&checkinMeasures, "measure", nil, "Circumference in cm as name=value, repeatable (e.g. waist=74,5)")
	checkinAddCmd.Flags().StringVar(&checkinDate, "date", "", "Check-in date (YYYY-MM-DD, default today)")
	checkinAddCmd.Flags().StringVar(&checkinTime, "time", "", "Check-in time (HH:MM)")
	checkinAddCmd.Flags().StringVar(&checkinNotes, "notes", "", "Free-form notes")
	_ = checkinAddCmd.MarkFlagRequired("height")
	_ = checkinAddCmd.MarkFlagRequired("weight")

	checkinListCmd.Flags().StringVar(&checkinListDate, "date", "", "Only this date (YYYY-MM-DD)")
	checkinListCmd.Flags().StringVar(&checkinListFrom, "from", "", "From date (YYYY-MM-DD)")
	checkinListCmd.Flags().StringVar(&checkinListTo, "to", "", "To date inclusive (YYYY-MM-DD)")
	checkinListCmd.Flags().IntVar(&checkinListN, "limit", 0, "Max rows (default 50)")

	checkinEditCmd.Flags().StringVar(&editHeight, "height", "", "Height in meters")
	checkinEditCmd.Flags().StringVar(&editWeight, "weight", "", "Weight in kg")
	checkinEditCmd.Flags().StringVar(&editBodyFat, "body-fat", "", "Body fat percent")
	checkinEditCmd.Flags().StringVar(&editMuscle, "muscle", "", "Muscle percent")
	checkinEditCmd.Flags().StringVar(&editVisceral, "visceral", "", "Visceral fat rating")
	checkinEditCmd.Flags().IntVar(&editBMR, "bmr", 0, "BMR in kcal; pass 0 to recompute from the profile")
	checkinEditCmd.Flags().IntVar(&editBodyAge, "body-age", 0, "Device-reported body age")
	checkinEditCmd.Flags().StringSliceVar(&editMeasures, "measure", nil, "Replace circumferences with name=value pairs, repeatable")
	checkinEditCmd.Flags().StringVar(&editDate, "date", "", "Check-in date (YYYY-MM-DD)")
	checkinEditCmd.Flags().StringVar(&editTime, "time", "", "Check-in time (HH:MM)")
	checkinEditCmd.Flags().StringVar(&editNotes, "notes", "", "Free-form notes")

	checkinCmd.AddCommand(checkinAddCmd)
	checkinCmd.AddCommand(checkinEditCmd)
	checkinCmd.AddCommand(checkinListCmd)
	checkinCmd.AddCommand(checkinShowCmd)
	checkinCmd.AddCommand(checkinDeleteCmd)
	rootCmd.AddCommand(checkinCmd)
}

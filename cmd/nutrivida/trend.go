package nutrivida

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

var (
	trendFrom string
	trendTo   string
)

var trendCmd = &cobra.Command{
	Use:   "trend <patient-id>",
	Short: "Show a patient's progress over time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			trend, err := service.PatientTrend(sqldb, patientID, trendFrom, trendTo)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(trend.Points) == 0 {
				fmt.Fprintln(out, "No check-ins in range")
				return nil
			}
			fmt.Fprintln(out, "DATE\tWEIGHT\tBMI\tFAT%\tMUSCLE%\tSCORE")
			for _, p := range trend.Points {
				fmt.Fprintf(out, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%d\n",
					p.Date, p.WeightKg, p.BMI, p.BodyFatPct, p.MusclePct, p.HealthScore)
			}
			fmt.Fprintf(out, "\nOver %d check-ins: weight %+.1f kg, BMI %+.1f, body fat %+.1f%%, score %+d\n",
				trend.CheckInsInView, trend.WeightDeltaKg, trend.BMIDelta, trend.BodyFatDelta, trend.ScoreDelta)
			return nil
		})
	},
}

func init() {
	trendCmd.Flags().StringVar(&trendFrom, "from", "", "From date (YYYY-MM-DD)")
	trendCmd.Flags().StringVar(&trendTo, "to", "", "To date inclusive (YYYY-MM-DD)")
	rootCmd.AddCommand(trendCmd)
}

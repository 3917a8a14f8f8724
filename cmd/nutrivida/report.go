package nutrivida

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report <patient-id>",
	Short: "Export a full patient report as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			raw, err := service.ExportPatientReportJSON(sqldb, patientID, time.Now())
			if err != nil {
				return err
			}
			if reportOut == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return nil
			}
			if err := os.WriteFile(reportOut, raw, 0o644); err != nil {
				return fmt.Errorf("write report to %s: %w", reportOut, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote report to %s\n", reportOut)
			return nil
		})
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Write to file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

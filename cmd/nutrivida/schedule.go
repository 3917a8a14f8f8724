package nutrivida

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the appointment book",
}

var (
	apptDate     string
	apptTime     string
	apptDuration int
	apptNotes    string
)

var scheduleAddCmd = &cobra.Command{
	Use:   "add <patient-id>",
	Short: "Book an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patientID, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		at, err := parseDateTime(apptDate, apptTime)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.ScheduleAppointment(sqldb, service.AppointmentInput{
				PatientID:   patientID,
				ScheduledAt: at,
				DurationMin: apptDuration,
				Notes:       apptNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Booked appointment %d for %s\n", id, at.Format("2006-01-02 15:04"))
			return nil
		})
	},
}

var (
	apptListPatient int64
	apptListDate    string
	apptListFrom    string
	apptListTo      string
	apptListStatus  string
	apptListLimit   int
)

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List appointments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			appts, err := service.ListAppointments(sqldb, service.AppointmentFilter{
				PatientID: apptListPatient,
				Date:      apptListDate,
				FromDate:  apptListFrom,
				ToDate:    apptListTo,
				Status:    apptListStatus,
				Limit:     apptListLimit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tWHEN\tMIN\tPATIENT\tSTATUS\tNOTES")
			for _, a := range appts {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d\t%d\t%s\t%s\n",
					a.ID, a.ScheduledAt.Local().Format("2006-01-02 15:04"), a.DurationMin, a.PatientID, a.Status, a.Notes)
			}
			return nil
		})
	},
}

var scheduleCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark an appointment as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("appointment id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.CompleteAppointment(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed appointment %d\n", id)
			return nil
		})
	},
}

var scheduleCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Cancel an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("appointment id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.CancelAppointment(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled appointment %d\n", id)
			return nil
		})
	},
}

func init() {
	scheduleAddCmd.Flags().StringVar(&apptDate, "date", "", "Appointment date (YYYY-MM-DD, required)")
	scheduleAddCmd.Flags().StringVar(&apptTime, "time", "", "Appointment time (HH:MM, required)")
	scheduleAddCmd.Flags().IntVar(&apptDuration, "duration", 0, "Duration in minutes (default 60)")
	scheduleAddCmd.Flags().StringVar(&apptNotes, "notes", "", "Free-form notes")
	_ = scheduleAddCmd.MarkFlagRequired("date")
	_ = scheduleAddCmd.MarkFlagRequired("time")

	scheduleListCmd.Flags().Int64Var(&apptListPatient, "patient", 0, "Filter by patient id")
	scheduleListCmd.Flags().StringVar(&apptListDate, "date", "", "Only this date (YYYY-MM-DD)")
	scheduleListCmd.Flags().StringVar(&apptListFrom, "from", "", "From date (YYYY-MM-DD)")
	scheduleListCmd.Flags().StringVar(&apptListTo, "to", "", "To date inclusive (YYYY-MM-DD)")
	scheduleListCmd.Flags().StringVar(&apptListStatus, "status", "", "Filter by status: scheduled, completed, cancelled")
	scheduleListCmd.Flags().IntVar(&apptListLimit, "limit", 0, "Max rows")

	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleCompleteCmd)
	scheduleCmd.AddCommand(scheduleCancelCmd)
	rootCmd.AddCommand(scheduleCmd)
}

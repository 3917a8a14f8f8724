package nutrivida

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

var patientCmd = &cobra.Command{
	Use:   "patient",
	Short: "Manage patient records",
}

var (
	patientName      string
	patientBirthDate string
	patientSex       string
	patientPhone     string
	patientEmail     string
	patientNotes     string
)

var patientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a new patient",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreatePatient(sqldb, service.PatientInput{
				Name:      patientName,
				BirthDate: patientBirthDate,
				Sex:       patientSex,
				Phone:     patientPhone,
				Email:     patientEmail,
				Notes:     patientNotes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added patient %d\n", id)
			return nil
		})
	},
}

var (
	patientListQuery    string
	patientListArchived bool
	patientListLimit    int
)

var patientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patients",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			patients, err := service.ListPatients(sqldb, service.ListPatientsFilter{
				Query:           patientListQuery,
				IncludeArchived: patientListArchived,
				Limit:           patientListLimit,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tSEX\tAGE\tPHONE\tSTATUS")
			now := time.Now()
			for _, p := range patients {
				age := "-"
				if years, ok := service.PatientAge(&p, now); ok {
					age = fmt.Sprintf("%d", years)
				}
				status := "active"
				if p.ArchivedAt != nil {
					status = "archived"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Sex, age, p.Phone, status)
			}
			return nil
		})
	},
}

var patientShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetPatient(sqldb, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID: %d\n", p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Name: %s\n", p.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Sex: %s\n", p.Sex)
			if p.BirthDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Birth date: %s\n", p.BirthDate)
				if age, ok := service.PatientAge(p, time.Now()); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", age)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phone: %s\n", p.Phone)
			fmt.Fprintf(cmd.OutOrStdout(), "Email: %s\n", p.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Notes: %s\n", p.Notes)
			if p.ArchivedAt != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Archived: %s\n", p.ArchivedAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		})
	},
}

var patientUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a patient record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			current, err := service.GetPatient(sqldb, id)
			if err != nil {
				return err
			}
			in := service.PatientInput{
				Name:      current.Name,
				BirthDate: current.BirthDate,
				Sex:       current.Sex,
				Phone:     current.Phone,
				Email:     current.Email,
				Notes:     current.Notes,
			}
			if cmd.Flags().Changed("name") {
				in.Name = patientName
			}
			if cmd.Flags().Changed("birth-date") {
				in.BirthDate = patientBirthDate
			}
			if cmd.Flags().Changed("sex") {
				in.Sex = patientSex
			}
			if cmd.Flags().Changed("phone") {
				in.Phone = patientPhone
			}
			if cmd.Flags().Changed("email") {
				in.Email = patientEmail
			}
			if cmd.Flags().Changed("notes") {
				in.Notes = patientNotes
			}
			if err := service.UpdatePatient(sqldb, id, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated patient %d\n", id)
			return nil
		})
	},
}

var patientArchiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive a patient (kept for history, hidden from lists)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.ArchivePatient(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived patient %d\n", id)
			return nil
		})
	},
}

var patientUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <id>",
	Short: "Restore an archived patient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("patient id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UnarchivePatient(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored patient %d\n", id)
			return nil
		})
	},
}

func init() {
	patientAddCmd.Flags().StringVar(&patientName, "name", "", "Patient full name (required)")
	patientAddCmd.Flags().StringVar(&patientBirthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	patientAddCmd.Flags().StringVar(&patientSex, "sex", "", "Sex: male or female (required)")
	patientAddCmd.Flags().StringVar(&patientPhone, "phone", "", "Contact phone")
	patientAddCmd.Flags().StringVar(&patientEmail, "email", "", "Contact email")
	patientAddCmd.Flags().StringVar(&patientNotes, "notes", "", "Free-form notes")
	_ = patientAddCmd.MarkFlagRequired("name")
	_ = patientAddCmd.MarkFlagRequired("sex")

	patientListCmd.Flags().StringVar(&patientListQuery, "query", "", "Filter by name substring")
	patientListCmd.Flags().BoolVar(&patientListArchived, "archived", false, "Include archived patients")
	patientListCmd.Flags().IntVar(&patientListLimit, "limit", 0, "Max rows (default 100)")

	patientUpdateCmd.Flags().StringVar(&patientName, "name", "", "Patient full name")
	patientUpdateCmd.Flags().StringVar(&patientBirthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	patientUpdateCmd.Flags().StringVar(&patientSex, "sex", "", "Sex: male or female")
	patientUpdateCmd.Flags().StringVar(&patientPhone, "phone", "", "Contact phone")
	patientUpdateCmd.Flags().StringVar(&patientEmail, "email", "", "Contact email")
	patientUpdateCmd.Flags().StringVar(&patientNotes, "notes", "", "Free-form notes")

	patientCmd.AddCommand(patientAddCmd)
	patientCmd.AddCommand(patientListCmd)
	patientCmd.AddCommand(patientShowCmd)
	patientCmd.AddCommand(patientUpdateCmd)
	patientCmd.AddCommand(patientArchiveCmd)
	patientCmd.AddCommand(patientUnarchiveCmd)
	rootCmd.AddCommand(patientCmd)
}

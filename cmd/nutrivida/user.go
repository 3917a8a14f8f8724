package nutrivida

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage clinic staff accounts for the web API",
}

var (
	userPassword    string
	userDisplayName string
)

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create a staff account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.CreateClinicUser(sqldb, args[0], userPassword, userDisplayName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d\n", id)
			return nil
		})
	},
}

func init() {
	userAddCmd.Flags().StringVar(&userPassword, "password", "", "Password, at least 8 characters (required)")
	userAddCmd.Flags().StringVar(&userDisplayName, "display-name", "", "Name shown in the web client")
	_ = userAddCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userAddCmd)
	rootCmd.AddCommand(userCmd)
}

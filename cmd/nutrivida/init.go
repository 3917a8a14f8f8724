package nutrivida

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/app"
	"github.com/jandersaraiva/nutrivida/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the local clinic database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized nutrivida database at %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

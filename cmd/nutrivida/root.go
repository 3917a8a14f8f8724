package nutrivida

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutrivida",
	Short: "nutrivida manages a nutrition practice from your terminal",
	Long:  "nutrivida is a local-first clinic manager for nutritionists: patients, body-composition check-ins, diet plans, appointments, and progress reports.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
}

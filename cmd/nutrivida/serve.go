package nutrivida

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jandersaraiva/nutrivida/internal/api"
)

var (
	serveAddr   string
	serveEnvTip = "set NUTRIVIDA_JWT_SECRET (or put it in .env) before serving"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the web client",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is fine; the variables can come from the environment.
		_ = godotenv.Load()

		secret := os.Getenv("NUTRIVIDA_JWT_SECRET")
		if secret == "" {
			return fmt.Errorf("NUTRIVIDA_JWT_SECRET is not set: %s", serveEnvTip)
		}

		addr := serveAddr
		if addr == "" {
			addr = os.Getenv("NUTRIVIDA_ADDR")
		}
		if addr == "" {
			addr = ":8080"
		}

		return withDB(func(sqldb *sql.DB) error {
			server := api.NewServer(sqldb, []byte(secret))
			fmt.Fprintf(cmd.OutOrStdout(), "Serving nutrivida API on %s\n", addr)
			return server.Router().Run(addr)
		})
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default NUTRIVIDA_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)
}

package root

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/Karthikeyasharma979/fitness/internal/api"
)

func newServeCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the self-hosted sync backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := sql.Open("sqlite", dbPath)
			if err != nil {
				return fmt.Errorf("open sqlite: %w", err)
			}
			defer db.Close()

			srv := api.New(db)
			if err := srv.Migrate(context.Background()); err != nil {
				return err
			}

			addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
			log.Printf("arise sync backend listening on %s", addr)
			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "arise-sync.db", "path of the backend database")
	return cmd
}

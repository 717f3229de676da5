package main

import (
	"fmt"

	"budget_tracker/internal/config"
	"budget_tracker/internal/db"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var driver string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and entries tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadConfig() // DB_* settings from env or .env
			cfg.StoreBackend = config.BackendSQL
			if driver != "" {
				cfg.DBDriver = driver
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			conn, err := db.Open(cfg)
			if err != nil {
				return err
			}
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			logrus.WithField("driver", cfg.DBDriver).Debug("Running migration")
			return db.Migrate(conn)
		},
	}
	cmd.Flags().StringVar(&driver, "driver", "", "Override DB_DRIVER (mysql or sqlite)")
	return cmd
}

package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/maheshrc27/postcal/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := openDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeDB(db)

			if err := database.CreateTables(cmd.Context(), db); err != nil {
				return err
			}
			log.Println("Tables are up to date")
			return nil
		},
	}
}

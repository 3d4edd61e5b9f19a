package main

import (
	"github.com/spf13/cobra"

	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/seederr"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema without loading data",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := newLogger()
	ctx := cmd.Context()

	if cfg.DSN == "" {
		return seederr.Configf("--dsn or DATABASE_URL is required")
	}

	pool, err := db.NewPool(ctx, cfg.DSN, 1)
	if err != nil {
		return err
	}
	defer pool.Close()

	return db.ApplyMigrations(ctx, pool, log)
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/migrations"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := app.Bootstrap()
			if err != nil {
				return err
			}
			return migrations.Up(cmd.Context(), cfg.Database.DSN, logger)
		},
	}
}

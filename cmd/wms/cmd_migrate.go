package main

import (
	"github.com/spf13/cobra"

	"github.com/aczyrek/warehouse-management-system/internal/bootstrap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes (postgres o sqlite)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return bootstrap.Migrate(cmd.Context(), cfg, log)
	},
}

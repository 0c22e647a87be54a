package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/aczyrek/warehouse-management-system/internal/bootstrap"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Imprime el resumen del dashboard en JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(app *bootstrap.App) error {
			summary, err := app.Dashboard.GetSummary(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		})
	},
}

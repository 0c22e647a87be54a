package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aczyrek/warehouse-management-system/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Firma una clave de API para un PostgREST local",
	Long: `Firma con STORE_REST_JWT_SECRET una clave HS256 con el rol indicado.
Con --inspect muestra rol y vencimiento de STORE_REST_API_KEY sin verificar la firma.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		if inspect, _ := cmd.Flags().GetBool("inspect"); inspect {
			info, err := jwt.Inspect(cfg.Store.RestAPIKey)
			if err != nil {
				return err
			}
			exp := "sin vencimiento"
			if !info.ExpiresAt.IsZero() {
				exp = info.ExpiresAt.Format(time.RFC3339)
			}
			fmt.Fprintf(out, "rol: %s\nemisor: %s\nvence: %s\nvencida: %t\n", info.Role, info.Issuer, exp, info.Expired(time.Now()))
			return nil
		}

		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		key, err := jwt.Sign(cfg.Store.RestJWTSecret, role, cfg.App.Name, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, key)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("role", "service_role", "rol de base de datos")
	tokenCmd.Flags().Duration("ttl", 0, "vigencia (0 = sin vencimiento)")
	tokenCmd.Flags().Bool("inspect", false, "inspecciona STORE_REST_API_KEY")
}

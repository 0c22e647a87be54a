// Command wms opera el inventario desde la terminal: migraciones, importación,
// exportación, reportes, resumen del dashboard y firma de claves del store REST.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aczyrek/warehouse-management-system/internal/bootstrap"
	"github.com/aczyrek/warehouse-management-system/pkg/config"
	"github.com/aczyrek/warehouse-management-system/pkg/logger"
)

var (
	cfg *config.Config
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:           "wms",
	Short:         "Inventario de bodega desde la línea de comandos",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.Store.Backend = backend
		}
		log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "sobrescribe STORE_BACKEND (postgres|sqlite|rest|memory)")
	rootCmd.AddCommand(migrateCmd, importCmd, exportCmd, reportCmd, dashboardCmd, tokenCmd)
}

// withApp construye las dependencias, ejecuta fn y las libera.
func withApp(ctx context.Context, fn func(*bootstrap.App) error) error {
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

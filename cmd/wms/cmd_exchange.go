package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aczyrek/warehouse-management-system/internal/application/exchange"
	"github.com/aczyrek/warehouse-management-system/internal/bootstrap"
	"github.com/aczyrek/warehouse-management-system/internal/domain"
)

var importCmd = &cobra.Command{
	Use:   "import <archivo.xlsx>",
	Short: "Importa registros desde un xlsx en un único lote",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			cfg.Exchange.StrictImport = true
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		return withApp(cmd.Context(), func(app *bootstrap.App) error {
			n, err := app.Exchange.Import(cmd.Context(), f)
			if err != nil {
				return fmt.Errorf("%s (%w)", domain.UserMessage(err), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d registros importados\n", n)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta todo el inventario a xlsx",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(app *bootstrap.App) error {
			f, err := app.Exchange.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s (%w)", domain.UserMessage(err), err)
			}
			return save(cmd, f)
		})
	},
}

var reportCmd = &cobra.Command{
	Use:       "report <inventory|low-stock|activity>",
	Short:     "Genera un reporte",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(exchange.ReportInventory), string(exchange.ReportLowStock), string(exchange.ReportActivity)},
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, err := exchange.ParseReportType(args[0])
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		return withApp(cmd.Context(), func(app *bootstrap.App) error {
			f, err := app.Exchange.Report(cmd.Context(), typ, format)
			if err != nil {
				return fmt.Errorf("%s (%w)", domain.UserMessage(err), err)
			}
			return save(cmd, f)
		})
	},
}

func init() {
	importCmd.Flags().Bool("strict", false, "valida cada fila antes de insertar")
	for _, c := range []*cobra.Command{exportCmd, reportCmd} {
		c.Flags().StringP("out", "o", "", "directorio de salida (por defecto EXCHANGE_REPORTS_DIR)")
	}
	reportCmd.Flags().StringP("format", "f", exchange.FormatXLSX, "xlsx | pdf")
}

func save(cmd *cobra.Command, f *exchange.File) error {
	dir, _ := cmd.Flags().GetString("out")
	if dir == "" {
		dir = cfg.Exchange.ReportsDir
	}
	path, err := f.SaveTo(dir)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

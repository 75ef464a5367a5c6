package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/smart-inventory-api/internal/bootstrap"
	"github.com/jhoicas/smart-inventory-api/pkg/config"
	"github.com/jhoicas/smart-inventory-api/pkg/logger"
)

// app estado compartido por los subcomandos, inicializado en PersistentPreRunE.
type app struct {
	outDir string
	log    *logger.Logger
	gw     *bootstrap.Gateway
	svc    *bootstrap.Services
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "export",
		Short: "Genera los reportes Excel de productos, facturas e inventario",
		Long: `Genera los mismos libros xlsx que expone /api/{version}/export/* usando
la configuración del servicio (DB_DRIVER, DATABASE_URL, EXPORT_PATH, ...).`,
		Example: `  # Inventario completo en ./exports
  export inventory

  # Facturas pagadas en otro directorio
  export invoices --status paid --out /tmp/reportes`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}
	root.PersistentFlags().StringVarP(&a.outDir, "out", "o", "", "Directorio de salida (por defecto EXPORT_PATH)")

	root.AddCommand(
		&cobra.Command{
			Use:   "products",
			Short: "Exporta todos los productos (activos e inactivos)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.report(cmd, "products", func(ctx context.Context) (string, error) {
					return a.svc.Export.ExportProducts(ctx)
				})
			},
		},
		a.invoicesCmd(),
		&cobra.Command{
			Use:   "inventory",
			Short: "Exporta el reporte de inventario (resumen y detalle)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.report(cmd, "inventory", func(ctx context.Context) (string, error) {
					return a.svc.Export.ExportInventoryReport(ctx)
				})
			},
		},
	)
	return root
}

func (a *app) invoicesCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Exporta las facturas, opcionalmente filtradas por estado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.report(cmd, "invoices", func(ctx context.Context) (string, error) {
				return a.svc.Export.ExportInvoices(ctx, status)
			})
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "", "draft, sent, paid, partially_paid, overdue o cancelled")
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	if a.outDir != "" {
		cfg.Export.Path = a.outDir
	}
	a.log = logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Out:     cmd.ErrOrStderr(),
	}).Component("export")

	a.gw, err = bootstrap.OpenGateway(cmd.Context(), cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a la base de datos: %w", err)
	}
	a.svc, err = bootstrap.NewServices(cfg, a.gw, nil)
	if err != nil {
		a.gw.Close()
		return err
	}
	return nil
}

func (a *app) close() {
	if a.gw != nil {
		a.gw.Close()
	}
}

func (a *app) report(cmd *cobra.Command, name string, run func(context.Context) (string, error)) error {
	path, err := run(cmd.Context())
	if err != nil {
		return err
	}
	a.log.Info().Str("report", name).Str("file", path).Msg("reporte generado")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/smart-inventory-api/docs"
	"github.com/jhoicas/smart-inventory-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/smart-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/smart-inventory-api/pkg/config"
	"github.com/jhoicas/smart-inventory-api/pkg/logger"
)

// @title        Smart Inventory API
// @version      1.0.0
// @description  Inventario, facturación, libro contable, dashboard y exportación a Excel.
// @BasePath     /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	gw, err := bootstrap.OpenGateway(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer gw.Close()

	statsCache, closeCache := bootstrap.OpenStatsCache(ctx, cfg.Redis)
	defer closeCache()

	svc, err := bootstrap.NewServices(cfg, gw, statsCache)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar casos de uso")
	}

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		Version:     cfg.App.Version,
		APIVersion:  cfg.App.APIVersion,
		CORSOrigins: cfg.CORS.AllowOrigins(),
		ProductUC:   svc.Product,
		StockUC:     svc.Stock,
		LowStockUC:  svc.LowStock,
		InvoiceUC:   svc.Invoice,
		InvoicePDF:  svc.PDF,
		LedgerUC:    svc.Ledger,
		ExportUC:    svc.Export,
		DashboardUC: svc.Dashboard,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	appanalytics "github.com/jhoicas/smart-inventory-api/internal/application/analytics"
	"github.com/jhoicas/smart-inventory-api/internal/application/billing"
	"github.com/jhoicas/smart-inventory-api/internal/application/export"
	"github.com/jhoicas/smart-inventory-api/internal/application/inventory"
	"github.com/jhoicas/smart-inventory-api/internal/application/ledger"
	"github.com/jhoicas/smart-inventory-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	Version     string
	APIVersion  string
	CORSOrigins string

	ProductUC   *usecase.ProductUseCase
	StockUC     *inventory.StockUseCase
	LowStockUC  *inventory.LowStockUseCase
	InvoiceUC   *billing.InvoiceUseCase
	InvoicePDF  *billing.PDFUseCase
	LedgerUC    *ledger.LedgerUseCase
	ExportUC    *export.ExportUseCase
	DashboardUC *appanalytics.DashboardUseCase
}

// NewApp crea la aplicación fiber con el manejador de errores de la API.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler,
	})
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger())
	if deps.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: deps.CORSOrigins,
			AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders: "Origin, Content-Type, Accept",
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":     "Welcome to " + deps.AppName,
			"version":     deps.Version,
			"api_version": deps.APIVersion,
			"docs_url":    "/docs",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api/" + strings.Trim(deps.APIVersion, "/"))

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	inventoryHandler := NewInventoryHandler(deps.StockUC, deps.LowStockUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock/report", inventoryHandler.LowStockReport)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Post("/:id/stock", inventoryHandler.AdjustStock)
	products.Delete("/:id", productHandler.Delete)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/overdue/report", invoiceHandler.OverdueReport)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Post("/:id/payment", invoiceHandler.RecordPayment)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Transactions (libro contable)
	transactions := api.Group("/transactions")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	transactions.Post("/", ledgerHandler.Create)
	transactions.Get("/", ledgerHandler.List)
	transactions.Get("/:id", ledgerHandler.GetByID)

	// Export
	exports := api.Group("/export")
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/products", exportHandler.Products)
	exports.Get("/invoices", exportHandler.Invoices)
	exports.Get("/inventory-report", exportHandler.InventoryReport)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/stats", dashboardHandler.GetStats)
}

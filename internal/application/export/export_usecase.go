package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

// ContentType tipo MIME de los archivos generados.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Estados de stock en el reporte de inventario.
const (
	StockStatusOut = "Out of Stock"
	StockStatusLow = "Low Stock"
	StockStatusIn  = "In Stock"
)

const fileTimestamp = "20060102_150405"

// ExportUseCase genera los reportes xlsx en el directorio configurado.
type ExportUseCase struct {
	reportRepo repository.ReportRepository
	writer     WorkbookWriter
	dir        string
	now        func() time.Time
	printer    *message.Printer
}

// NewExportUseCase construye el caso de uso y crea el directorio de exportación si no existe.
func NewExportUseCase(reportRepo repository.ReportRepository, writer WorkbookWriter, dir string) (*ExportUseCase, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de exportación: %w", err)
	}
	return &ExportUseCase{
		reportRepo: reportRepo,
		writer:     writer,
		dir:        dir,
		now:        time.Now,
		printer:    message.NewPrinter(language.English),
	}, nil
}

// ExportProducts exporta todos los productos (activos e inactivos) a products_*.xlsx.
func (uc *ExportUseCase) ExportProducts(ctx context.Context) (string, error) {
	products, err := uc.reportRepo.AllProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("exportar productos: %w", err)
	}
	sheet := Sheet{
		Name: "Products",
		Columns: []Column{
			{Header: "SKU"}, {Header: "Name"}, {Header: "Category"},
			{Header: "Current Stock"}, {Header: "Reorder Point"},
			{Header: "Cost Price"}, {Header: "Selling Price"},
			{Header: "Supplier"}, {Header: "Status"},
		},
		Rows: make([][]any, 0, len(products)),
	}
	for _, p := range products {
		status := "Inactive"
		if p.IsActive {
			status = "Active"
		}
		sheet.Rows = append(sheet.Rows, []any{
			p.SKU, p.Name, p.Category, p.CurrentStock, p.ReorderPoint,
			money(p.CostPrice), money(p.SellingPrice), p.Supplier, status,
		})
	}
	return uc.write("products", Workbook{Sheets: []Sheet{sheet}})
}

// ExportInvoices exporta las facturas (opcionalmente filtradas por estado) a invoices_*.xlsx.
func (uc *ExportUseCase) ExportInvoices(ctx context.Context, status string) (string, error) {
	if status != "" && !entity.IsValidInvoiceStatus(status) {
		return "", fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, status)
	}
	invoices, err := uc.reportRepo.InvoicesByStatus(ctx, status)
	if err != nil {
		return "", fmt.Errorf("exportar facturas: %w", err)
	}
	sheet := Sheet{
		Name: "Invoices",
		Columns: []Column{
			{Header: "Invoice Number"}, {Header: "Customer"},
			{Header: "Issue Date"}, {Header: "Due Date"}, {Header: "Status"},
			{Header: "Subtotal", Currency: true}, {Header: "Tax", Currency: true},
			{Header: "Discount", Currency: true}, {Header: "Total", Currency: true},
			{Header: "Paid", Currency: true}, {Header: "Balance", Currency: true},
		},
		Rows: make([][]any, 0, len(invoices)),
	}
	for _, inv := range invoices {
		var due any = ""
		if inv.DueDate != nil {
			due = *inv.DueDate
		}
		sheet.Rows = append(sheet.Rows, []any{
			inv.InvoiceNumber, inv.CustomerName, inv.IssueDate, due, inv.Status,
			money(inv.Subtotal), money(inv.TaxAmount), money(inv.DiscountAmount),
			money(inv.TotalAmount), money(inv.PaidAmount), money(inv.Balance()),
		})
	}
	return uc.write("invoices", Workbook{Sheets: []Sheet{sheet}})
}

// ExportInventoryReport exporta el resumen y el detalle de inventario activo a inventory_report_*.xlsx.
func (uc *ExportUseCase) ExportInventoryReport(ctx context.Context) (string, error) {
	products, err := uc.reportRepo.ActiveProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("exportar inventario: %w", err)
	}

	details := Sheet{
		Name: "Inventory Details",
		Columns: []Column{
			{Header: "SKU"}, {Header: "Product Name"}, {Header: "Category"},
			{Header: "Current Stock"}, {Header: "Min Stock"}, {Header: "Max Stock"},
			{Header: "Reorder Point"}, {Header: "Stock Status"},
			{Header: "Unit Cost"}, {Header: "Stock Value"}, {Header: "Supplier"},
		},
		Rows:       make([][]any, 0, len(products)),
		Tones:      make([]RowTone, 0, len(products)),
		FitContent: true,
	}
	totalValue := decimal.Zero
	lowStock, outOfStock := 0, 0
	for _, p := range products {
		value := p.StockValue()
		totalValue = totalValue.Add(value)

		if p.IsLowStock() {
			lowStock++
		}
		if p.IsOutOfStock() {
			outOfStock++
		}
		// Sin stock tiene prioridad sobre stock bajo.
		status, tone := StockStatusIn, ToneNormal
		switch {
		case p.IsOutOfStock():
			status, tone = StockStatusOut, ToneDanger
		case p.IsLowStock():
			status, tone = StockStatusLow, ToneWarning
		}
		details.Rows = append(details.Rows, []any{
			p.SKU, p.Name, p.Category, p.CurrentStock, p.MinStockLevel, p.MaxStockLevel,
			p.ReorderPoint, status, money(p.CostPrice), money(value), p.Supplier,
		})
		details.Tones = append(details.Tones, tone)
	}

	summary := Sheet{
		Name:    "Summary",
		Columns: []Column{{Header: "Metric"}, {Header: "Value"}},
		Rows: [][]any{
			{"Total Products", len(products)},
			{"Total Stock Value", uc.printer.Sprintf("$%.2f", money(totalValue))},
			{"Low Stock Items", lowStock},
			{"Out of Stock Items", outOfStock},
		},
		FitContent: true,
	}
	return uc.write("inventory_report", Workbook{Sheets: []Sheet{summary, details}})
}

func (uc *ExportUseCase) write(prefix string, wb Workbook) (string, error) {
	name := fmt.Sprintf("%s_%s.xlsx", prefix, uc.now().Format(fileTimestamp))
	path := filepath.Join(uc.dir, name)
	if err := uc.writer.Write(path, wb); err != nil {
		return "", fmt.Errorf("escribir %s: %w", name, err)
	}
	log.Info().Str("file", path).Int("sheets", len(wb.Sheets)).Msg("reporte exportado")
	return path, nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

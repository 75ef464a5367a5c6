package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /dashboard/stats.
type DashboardStatsDTO struct {
	Products ProductStatsDTO `json:"products"`
	Invoices InvoiceStatsDTO `json:"invoices"`
	Alerts   AlertsDTO       `json:"alerts"`
}

// ProductStatsDTO KPIs de inventario (solo productos activos).
type ProductStatsDTO struct {
	Total          int             `json:"total"`
	LowStock       int             `json:"low_stock"`
	OutOfStock     int             `json:"out_of_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// InvoiceStatsDTO KPIs de facturación. MonthlyRevenue cubre los últimos 30 días.
type InvoiceStatsDTO struct {
	Total             int             `json:"total"`
	Pending           int             `json:"pending"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// AlertsDTO contadores de alertas.
type AlertsDTO struct {
	LowStockProducts int `json:"low_stock_products"`
	OverdueInvoices  int `json:"overdue_invoices"`
}

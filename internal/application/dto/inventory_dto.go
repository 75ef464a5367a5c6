package dto

// StockAdjustmentRequest body para POST /products/{id}/stock.
// Quantity es un delta con signo; Reason solo se registra en el log.
type StockAdjustmentRequest struct {
	Quantity *int   `json:"quantity" validate:"required,min=-999999999,max=999999999"`
	Reason   string `json:"reason" validate:"max=500"`
}

// LowStockItemDTO fila del reporte de stock bajo.
type LowStockItemDTO struct {
	ID                     uint   `json:"id"`
	SKU                    string `json:"sku"`
	Name                   string `json:"name"`
	CurrentStock           int    `json:"current_stock"`
	ReorderPoint           int    `json:"reorder_point"`
	SuggestedOrderQuantity int    `json:"suggested_order_quantity"` // max_stock - current_stock
	Supplier               string `json:"supplier"`
}

// LowStockReportDTO respuesta de GET /products/low-stock/report.
type LowStockReportDTO struct {
	LowStockProducts []LowStockItemDTO `json:"products"`
	TotalProducts    int               `json:"total_products"`
}

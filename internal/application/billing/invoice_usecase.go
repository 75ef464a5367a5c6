package billing

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/smart-inventory-api/internal/application/dto"
	"github.com/jhoicas/smart-inventory-api/internal/domain"
	"github.com/jhoicas/smart-inventory-api/internal/domain/entity"
	"github.com/jhoicas/smart-inventory-api/internal/domain/invoicing"
	"github.com/jhoicas/smart-inventory-api/internal/domain/repository"
)

var maxLineQuantity = decimal.NewFromInt(entity.MaxStockQuantity)

// InvoiceUseCase motor del ciclo de vida de facturas: creación, pagos, consultas y reportes.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	inventoryUC InventoryUseCase
	invoiceRepo repository.InvoiceRepository
	reportRepo  repository.ReportRepository
	numbers     *invoicing.NumberGenerator
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	inventoryUC InventoryUseCase,
	invoiceRepo repository.InvoiceRepository,
	reportRepo repository.ReportRepository,
	numbers *invoicing.NumberGenerator,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		invoiceRepo: invoiceRepo,
		reportRepo:  reportRepo,
		numbers:     numbers,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj usado para fechas de emisión y el reporte de mora.
func (uc *InvoiceUseCase) WithClock(now func() time.Time) *InvoiceUseCase {
	uc.now = now
	return uc
}

// CreateInvoice crea la factura, descuenta el inventario por cada línea con producto
// y guarda cabecera y líneas en una sola transacción. Todo o nada.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if strings.TrimSpace(in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer_name es requerido", domain.ErrInvalidInput)
	}
	if !invoicing.ValidRate(in.TaxRate) || !invoicing.ValidRate(in.DiscountRate) {
		return nil, fmt.Errorf("%w: las tasas deben estar entre 0 y 100", domain.ErrInvalidInput)
	}
	if !invoicing.FitsScale(in.TaxRate, invoicing.RateScale) || !invoicing.FitsScale(in.DiscountRate, invoicing.RateScale) {
		return nil, fmt.Errorf("%w: las tasas admiten a lo sumo %d decimales", domain.ErrInvalidInput, invoicing.RateScale)
	}

	// ── 1. Líneas y subtotal (fuera de la tx, sin I/O) ────────────────────────
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	demand := make(map[uint]int)
	subtotal := decimal.Zero
	for i, req := range in.Items {
		quantity := decimal.NewFromInt(1)
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if !quantity.IsPositive() {
			return nil, fmt.Errorf("%w: items[%d].quantity debe ser mayor que 0", domain.ErrInvalidInput, i)
		}
		if quantity.GreaterThan(maxLineQuantity) || !invoicing.FitsScale(quantity, invoicing.QuantityScale) {
			return nil, fmt.Errorf("%w: items[%d].quantity fuera de rango o con más de %d decimales",
				domain.ErrInvalidInput, i, invoicing.QuantityScale)
		}
		if req.UnitPrice == nil || req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: items[%d].unit_price debe ser mayor o igual a 0", domain.ErrInvalidInput, i)
		}
		if !invoicing.FitsScale(*req.UnitPrice, invoicing.PriceScale) {
			return nil, fmt.Errorf("%w: items[%d].unit_price admite a lo sumo %d decimales",
				domain.ErrInvalidInput, i, invoicing.PriceScale)
		}
		if strings.TrimSpace(req.Description) == "" {
			return nil, fmt.Errorf("%w: items[%d].description es requerido", domain.ErrInvalidInput, i)
		}
		line := entity.InvoiceItem{
			Description: req.Description,
			Quantity:    quantity,
			UnitPrice:   *req.UnitPrice,
			TotalPrice:  invoicing.LineTotal(quantity, *req.UnitPrice),
		}
		if req.ProductID != nil {
			// El stock es un contador entero: la cantidad de una línea con producto debe ser entera.
			if !quantity.IsInteger() {
				return nil, fmt.Errorf("%w: items[%d].quantity debe ser entera para un producto", domain.ErrInvalidInput, i)
			}
			productID := *req.ProductID
			line.ProductID = &productID
			// quantity <= MaxStockQuantity, IntPart es exacto y la suma no desborda un int.
			demand[productID] += int(quantity.IntPart())
			if demand[productID] > entity.MaxStockQuantity {
				return nil, fmt.Errorf("%w: la cantidad total del producto %d supera %d",
					domain.ErrInvalidInput, productID, entity.MaxStockQuantity)
			}
		}
		subtotal = subtotal.Add(line.TotalPrice)
		items = append(items, line)
	}
	totals := invoicing.ComputeTotals(subtotal, in.TaxRate, in.DiscountRate)

	// Orden fijo de bloqueo para evitar deadlocks entre facturas concurrentes.
	productIDs := make([]uint, 0, len(demand))
	for id := range demand {
		productIDs = append(productIDs, id)
	}
	slices.Sort(productIDs)

	now := uc.now()
	var inv *entity.Invoice

	err := uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// ── 2. Número de factura ──────────────────────────────────────────────
		number, err := uc.numbers.Next(ctx, invoiceRepo.ExistsByNumber)
		if err != nil {
			return err
		}

		// ── 3. Descuento de stock; cualquier faltante aborta toda la factura ──
		for _, id := range productIDs {
			product, err := productRepo.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w (id %d)", domain.ErrProductNotFound, id)
			}
			if err := uc.inventoryUC.DecrementInTx(ctx, productRepo, product, demand[id]); err != nil {
				return err
			}
		}

		// ── 4. Cabecera + líneas en estado draft ──────────────────────────────
		inv = &entity.Invoice{
			InvoiceNumber:   number,
			CustomerName:    in.CustomerName,
			CustomerEmail:   in.CustomerEmail,
			CustomerPhone:   in.CustomerPhone,
			CustomerAddress: in.CustomerAddress,
			IssueDate:       now,
			DueDate:         in.DueDate,
			Status:          entity.InvoiceStatusDraft,
			Subtotal:        totals.Subtotal,
			TaxRate:         in.TaxRate,
			TaxAmount:       totals.TaxAmount,
			DiscountRate:    in.DiscountRate,
			DiscountAmount:  totals.DiscountAmount,
			TotalAmount:     totals.TotalAmount,
			PaidAmount:      decimal.Zero,
			Notes:           in.Notes,
			PaymentTerms:    in.PaymentTerms,
			Items:           items,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Uint("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Int("items", len(inv.Items)).
		Str("total_amount", inv.TotalAmount.StringFixed(2)).
		Msg("factura creada")

	return dto.NewInvoiceResponse(inv), nil
}

// RecordPayment suma amount a paid_amount y recalcula el estado.
// El sobrepago es válido y deja paid_amount > total_amount.
func (uc *InvoiceUseCase) RecordPayment(ctx context.Context, id uint, in dto.PaymentRequest) (*dto.InvoiceResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if !invoicing.FitsScale(in.Amount, invoicing.PriceScale) {
		return nil, fmt.Errorf("%w: amount admite a lo sumo %d decimales", domain.ErrInvalidInput, invoicing.PriceScale)
	}
	var inv *entity.Invoice
	var previous string
	err := uc.txRunner.RunBilling(ctx, func(_ repository.ProductRepository, invoiceRepo repository.InvoiceRepository) error {
		found, err := invoiceRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrInvoiceNotFound
		}
		previous = found.Status
		found.PaidAmount = found.PaidAmount.Add(in.Amount)
		found.Status = invoicing.StatusAfterPayment(found.Status, found.PaidAmount, found.TotalAmount)
		found.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(ctx, found); err != nil {
			return err
		}
		inv = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	event := log.Info().
		Uint("invoice_id", inv.ID).
		Str("invoice_number", inv.InvoiceNumber).
		Str("amount", in.Amount.StringFixed(2)).
		Str("paid_amount", inv.PaidAmount.StringFixed(2)).
		Str("previous_status", previous).
		Str("status", inv.Status).
		Str("payment_method", in.PaymentMethod).
		Str("notes", in.Notes)
	if in.PaymentDate != nil {
		event = event.Time("payment_date", *in.PaymentDate)
	}
	event.Msg("pago registrado")

	return dto.NewInvoiceResponse(inv), nil
}

// GetInvoice obtiene una factura por ID con sus líneas.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id uint) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return dto.NewInvoiceResponse(inv), nil
}

// ListInvoices lista facturas (con líneas) filtrando por estado y subcadena del cliente.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, in dto.InvoiceFilterRequest) (*dto.InvoiceListResponse, error) {
	in.DefaultPage()
	if in.Limit > dto.MaxLimit {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && !entity.IsValidInvoiceStatus(in.Status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, in.Status)
	}
	list, err := uc.invoiceRepo.List(ctx, repository.InvoiceFilter{
		Status:       in.Status,
		CustomerName: in.CustomerName,
		Offset:       in.Skip,
		Limit:        in.Limit,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *dto.NewInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Skip: in.Skip, Limit: in.Limit, Count: len(items)},
	}, nil
}

// UpdateInvoice aplica una actualización parcial de la cabecera.
// Nunca recalcula totales ni estado: el estado solo cambia si se envía explícitamente.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id uint, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.Status != nil && !entity.IsValidInvoiceStatus(*in.Status) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, *in.Status)
	}
	if in.CustomerName != nil && strings.TrimSpace(*in.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer_name no puede ser vacío", domain.ErrInvalidInput)
	}
	var inv *entity.Invoice
	err := uc.txRunner.RunBilling(ctx, func(_ repository.ProductRepository, invoiceRepo repository.InvoiceRepository) error {
		found, err := invoiceRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if found == nil {
			return domain.ErrInvoiceNotFound
		}
		applyInvoicePatch(found, in)
		found.UpdatedAt = uc.now()
		if err := invoiceRepo.Update(ctx, found); err != nil {
			return err
		}
		inv = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func applyInvoicePatch(inv *entity.Invoice, in dto.UpdateInvoiceRequest) {
	if in.CustomerName != nil {
		inv.CustomerName = *in.CustomerName
	}
	if in.CustomerEmail != nil {
		inv.CustomerEmail = *in.CustomerEmail
	}
	if in.CustomerPhone != nil {
		inv.CustomerPhone = *in.CustomerPhone
	}
	if in.CustomerAddress != nil {
		inv.CustomerAddress = *in.CustomerAddress
	}
	if in.DueDate != nil {
		due := *in.DueDate
		inv.DueDate = &due
	}
	if in.Status != nil {
		inv.Status = *in.Status
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if in.PaymentTerms != nil {
		inv.PaymentTerms = *in.PaymentTerms
	}
}

// OverdueReport lista las facturas vencidas (due_date < ahora, estado sent o partially_paid)
// con días de mora y saldo pendiente.
func (uc *InvoiceUseCase) OverdueReport(ctx context.Context) (*dto.OverdueReportDTO, error) {
	now := uc.now()
	list, err := uc.reportRepo.OverdueInvoices(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("reporte de mora: %w", err)
	}
	report := &dto.OverdueReportDTO{
		OverdueInvoices:    make([]dto.OverdueInvoiceDTO, 0, len(list)),
		TotalOverdueAmount: decimal.Zero,
	}
	for _, inv := range list {
		if !invoicing.IsOverdue(inv, now) {
			continue
		}
		due := inv.Balance()
		report.OverdueInvoices = append(report.OverdueInvoices, dto.OverdueInvoiceDTO{
			InvoiceNumber: inv.InvoiceNumber,
			CustomerName:  inv.CustomerName,
			DueDate:       *inv.DueDate,
			DaysOverdue:   invoicing.DaysOverdue(*inv.DueDate, now),
			TotalAmount:   inv.TotalAmount,
			PaidAmount:    inv.PaidAmount,
			AmountDue:     due,
		})
		report.TotalOverdueAmount = report.TotalOverdueAmount.Add(due)
	}
	report.TotalOverdueInvoices = len(report.OverdueInvoices)
	return report, nil
}

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrProductNotFound        = fmt.Errorf("%w: producto", ErrNotFound)
	ErrInvoiceNotFound        = fmt.Errorf("%w: factura", ErrNotFound)
	ErrTransactionNotFound    = fmt.Errorf("%w: transacción", ErrNotFound)
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInvoiceNumberExhausted = errors.New("no se pudo generar un número de factura único")
)

// InsufficientStockError indica qué producto no tiene stock suficiente.
// errors.Is(err, ErrInsufficientStock) se cumple a través de Unwrap.
type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (disponible %d, solicitado %d)", e.Product, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// DuplicateSKUError indica que ya existe un producto con el SKU dado.
type DuplicateSKUError struct {
	SKU string
}

func (e *DuplicateSKUError) Error() string {
	return fmt.Sprintf("ya existe un producto con el SKU %s", e.SKU)
}

func (e *DuplicateSKUError) Unwrap() error { return ErrDuplicate }

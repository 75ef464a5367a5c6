// Package export convierte consultas de productos y facturas en libros de cálculo.
// La presentación (estilos, anchos, formatos) la resuelve el WorkbookWriter.
package export

// RowTone resaltado de una fila completa.
type RowTone int

const (
	ToneNormal  RowTone = iota
	ToneWarning         // stock bajo (ámbar)
	ToneDanger          // sin stock (rojo, texto blanco)
)

// Column encabezado de columna. Currency aplica el formato $#,##0.00 a sus celdas.
type Column struct {
	Header   string
	Currency bool
}

// Sheet hoja del libro. Tones es paralelo a Rows y puede ser más corto.
// FitContent ajusta el ancho al contenido (máx. 50) en lugar de max(12, len(header)+2).
type Sheet struct {
	Name       string
	Columns    []Column
	Rows       [][]any
	Tones      []RowTone
	FitContent bool
}

// Workbook libro con sus hojas en orden.
type Workbook struct {
	Sheets []Sheet
}

// WorkbookWriter puerto de escritura de libros xlsx.
type WorkbookWriter interface {
	Write(path string, wb Workbook) error
}

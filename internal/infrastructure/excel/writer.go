// Package excel renderiza export.Workbook a archivos xlsx con excelize.
package excel

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/smart-inventory-api/internal/application/export"
)

var _ export.WorkbookWriter = (*Writer)(nil)

// ── Paleta y formatos ─────────────────────────────────────────────────────────

const (
	headerFill   = "366092"
	warningFill  = "FFC000"
	dangerFill   = "FF0000"
	white        = "FFFFFF"
	currencyFmt  = "$#,##0.00"
	dateFmt      = "yyyy-mm-dd hh:mm"
	minFlatWidth = 12
	maxFitWidth  = 50
)

// Writer implementa export.WorkbookWriter.
type Writer struct{}

// NewWriter construye el writer.
func NewWriter() *Writer { return &Writer{} }

// Write crea el libro en path. La primera hoja reemplaza a la "Sheet1" por defecto.
func (w *Writer) Write(path string, wb export.Workbook) error {
	if len(wb.Sheets) == 0 {
		return fmt.Errorf("excel: libro sin hojas")
	}
	f := excelize.NewFile()
	defer f.Close()

	styles := newStyleSet(f)
	for i, sheet := range wb.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("excel: renombrar hoja: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("excel: crear hoja %s: %w", sheet.Name, err)
		}
		if err := writeSheet(f, styles, sheet); err != nil {
			return fmt.Errorf("excel: hoja %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("excel: guardar %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, styles *styleSet, sheet export.Sheet) error {
	headerStyle, err := styles.header()
	if err != nil {
		return err
	}
	widths := make([]int, len(sheet.Columns))

	for c, col := range sheet.Columns {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet.Name, cell, col.Header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, cell, cell, headerStyle); err != nil {
			return err
		}
		widths[c] = utf8.RuneCountInString(col.Header)
	}

	for r, values := range sheet.Rows {
		tone := export.ToneNormal
		if r < len(sheet.Tones) {
			tone = sheet.Tones[r]
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
				return err
			}
			currency := c < len(sheet.Columns) && sheet.Columns[c].Currency
			_, isDate := v.(time.Time)
			if style, ok, err := styles.cell(tone, currency, isDate); err != nil {
				return err
			} else if ok {
				if err := f.SetCellStyle(sheet.Name, cell, cell, style); err != nil {
					return err
				}
			}
			if c < len(widths) {
				widths[c] = max(widths[c], utf8.RuneCountInString(cellText(v)))
			}
		}
	}

	for c, col := range sheet.Columns {
		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		width := max(minFlatWidth, utf8.RuneCountInString(col.Header)+2)
		if sheet.FitContent {
			width = min(widths[c]+2, maxFitWidth)
		}
		if err := f.SetColWidth(sheet.Name, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

func cellText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format("2006-01-02 15:04")
	case float64:
		return fmt.Sprintf("%.2f", t)
	default:
		return fmt.Sprint(t)
	}
}

// ── Estilos ───────────────────────────────────────────────────────────────────

type styleKey struct {
	tone     export.RowTone
	currency bool
	date     bool
}

// styleSet registra cada combinación una sola vez por libro.
type styleSet struct {
	f        *excelize.File
	headerID int
	byKey    map[styleKey]int
}

func newStyleSet(f *excelize.File) *styleSet {
	return &styleSet{f: f, headerID: -1, byKey: make(map[styleKey]int)}
}

func (s *styleSet) header() (int, error) {
	if s.headerID >= 0 {
		return s.headerID, nil
	}
	id, err := s.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: white},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("estilo de encabezado: %w", err)
	}
	s.headerID = id
	return id, nil
}

// cell devuelve ok=false cuando la celda no necesita estilo.
func (s *styleSet) cell(tone export.RowTone, currency, date bool) (int, bool, error) {
	key := styleKey{tone: tone, currency: currency, date: date}
	if key == (styleKey{}) {
		return 0, false, nil
	}
	if id, ok := s.byKey[key]; ok {
		return id, true, nil
	}
	style := &excelize.Style{}
	switch tone {
	case export.ToneWarning:
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{warningFill}, Pattern: 1}
	case export.ToneDanger:
		style.Fill = excelize.Fill{Type: "pattern", Color: []string{dangerFill}, Pattern: 1}
		style.Font = &excelize.Font{Color: white}
	}
	switch {
	case currency:
		numFmt := currencyFmt
		style.CustomNumFmt = &numFmt
	case date:
		numFmt := dateFmt
		style.CustomNumFmt = &numFmt
	}
	id, err := s.f.NewStyle(style)
	if err != nil {
		return 0, false, fmt.Errorf("estilo de celda: %w", err)
	}
	s.byKey[key] = id
	return id, true, nil
}

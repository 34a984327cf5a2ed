package masterdata

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbook envuelve el libro con búsqueda de hojas sin distinguir mayúsculas.
type workbook struct {
	f     *excelize.File
	names map[string]string
}

func newWorkbook(f *excelize.File) *workbook {
	names := make(map[string]string)
	for _, n := range f.GetSheetList() {
		names[strings.ToLower(n)] = n
	}
	return &workbook{f: f, names: names}
}

func (w *workbook) sheetName(name string) (string, bool) {
	actual, ok := w.names[strings.ToLower(name)]
	return actual, ok
}

// dataRows devuelve las filas no vacías debajo del encabezado, con su número de fila en la hoja.
// Las celdas se leen sin formato de visualización: un precio con formato "#,##0" llega como "45000"
// y una hora con formato "h:mm" como fracción de día.
func (w *workbook) dataRows(sheet string) ([]sheetRow, error) {
	name, ok := w.sheetName(sheet)
	if !ok {
		return nil, nil
	}
	rows, err := w.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	out := make([]sheetRow, 0, len(rows))
	for i := 1; i < len(rows); i++ {
		r := sheetRow{Number: i + 1, cells: rows[i]}
		if r.empty() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// sheetRow fila de datos; Number es 1-based (el encabezado es la fila 1).
type sheetRow struct {
	Number int
	cells  []string
}

func (r sheetRow) cell(col int) string {
	if col < 0 || col >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[col])
}

func (r sheetRow) blank(col int) bool { return r.cell(col) == "" }

func (r sheetRow) empty() bool {
	for i := range r.cells {
		if !r.blank(i) {
			return false
		}
	}
	return true
}

// columnLetter convierte un índice 0-based en letra de columna (0 -> A, 26 -> AA).
func columnLetter(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return ""
	}
	return name
}

// duplicateKeys primera pasada de una etapa: cuenta llaves normalizadas y devuelve las repetidas.
// Filas cuya llave no se puede calcular (key devuelve "") no participan.
func duplicateKeys(rows []sheetRow, key func(sheetRow) string) map[string]bool {
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		if k := key(r); k != "" {
			counts[k]++
		}
	}
	dups := make(map[string]bool)
	for k, n := range counts {
		if n > 1 {
			dups[k] = true
		}
	}
	return dups
}

// requiredField columna obligatoria con su código de error.
type requiredField struct {
	col   int
	code  string
	label string
}

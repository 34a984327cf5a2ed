package masterdata

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Nombres de hoja del libro maestro.
const (
	SheetBranch          = "Branch"
	SheetOperatingHour   = "BranchOperatingHour"
	SheetStaff           = "Staff"
	SheetParentCategory  = "ParentCategory"
	SheetServiceCategory = "ServiceCategory"
	SheetService         = "Service"
	SheetPartCategory    = "PartCategory"
	SheetPart            = "Part"
)

// SheetTemplate hoja requerida con sus encabezados en orden.
type SheetTemplate struct {
	Name    string
	Headers []string
}

// Templates hojas requeridas, en el orden en que se importan.
var Templates = []SheetTemplate{
	{SheetBranch, []string{"BranchName", "PhoneNumber", "Email", "Street", "Commune", "Province", "Description", "IsActive", "ArrivalWindowMinutes", "MaxBookingsPerWindow"}},
	{SheetOperatingHour, []string{"BranchName", "DayOfWeek", "IsOpen", "OpenTime", "CloseTime"}},
	{SheetStaff, []string{"UserName", "Email", "PhoneNumber", "FullName", "Role", "BranchName", "IsActive"}},
	{SheetParentCategory, []string{"ParentCategoryName", "Description", "IsActive"}},
	{SheetServiceCategory, []string{"ParentCategoryName", "CategoryName", "Description", "IsActive"}},
	{SheetService, []string{"CategoryName", "ServiceName", "Description", "Price", "EstimatedDuration", "IsAdvanced", "BranchName"}},
	{SheetPartCategory, []string{"PartCategoryName", "Description", "ServiceName"}},
	{SheetPart, []string{"PartCategoryName", "PartName", "Price"}},
}

// ValidateTemplate verifica hojas y encabezados antes de leer datos.
// Registra MissingSheet, InsufficientColumns o InvalidHeader en el colector; no lee filas de datos.
func ValidateTemplate(f *excelize.File, errs *ErrorCollector) error {
	wb := newWorkbook(f)
	for _, tpl := range Templates {
		actual, ok := wb.sheetName(tpl.Name)
		if !ok {
			errs.Add(tpl.Name, CodeMissingSheet, fmt.Sprintf("falta la hoja %q", tpl.Name))
			continue
		}
		header, err := readHeader(f, actual)
		if err != nil {
			return fmt.Errorf("leer encabezado de %s: %w", tpl.Name, err)
		}
		if len(header) < len(tpl.Headers) {
			errs.AddAt(tpl.Name, 1, -1, CodeInsufficientColumns,
				fmt.Sprintf("la hoja %q tiene %d columnas, se esperaban %d", tpl.Name, len(header), len(tpl.Headers)))
			continue
		}
		for i, want := range tpl.Headers {
			got := strings.TrimSpace(header[i])
			if !strings.EqualFold(got, want) {
				errs.AddAt(tpl.Name, 1, i, CodeInvalidHeader,
					fmt.Sprintf("encabezado %q inválido, se esperaba %q", got, want))
			}
		}
	}
	return nil
}

// readHeader lee solo la primera fila de la hoja.
func readHeader(f *excelize.File, sheet string) ([]string, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Error()
	}
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	// Columns puede traer celdas vacías al final.
	for len(cols) > 0 && strings.TrimSpace(cols[len(cols)-1]) == "" {
		cols = cols[:len(cols)-1]
	}
	return cols, nil
}

// BuildTemplate genera un libro vacío con las ocho hojas y su fila de encabezados.
func BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("crear estilo: %w", err)
	}
	defaultSheet := f.GetSheetName(0)
	for i, tpl := range Templates {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, tpl.Name); err != nil {
				_ = f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(tpl.Name); err != nil {
			_ = f.Close()
			return nil, err
		}
		headers := make([]interface{}, len(tpl.Headers))
		for j, h := range tpl.Headers {
			headers[j] = h
		}
		if err := f.SetSheetRow(tpl.Name, "A1", &headers); err != nil {
			_ = f.Close()
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(tpl.Headers), 1)
		if err := f.SetCellStyle(tpl.Name, "A1", last, bold); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

package masterdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildTemplate_PasaLaValidacion(t *testing.T) {
	f, err := BuildTemplate()
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{
		SheetBranch, SheetOperatingHour, SheetStaff, SheetParentCategory,
		SheetServiceCategory, SheetService, SheetPartCategory, SheetPart,
	}, f.GetSheetList())

	errs := &ErrorCollector{}
	require.NoError(t, ValidateTemplate(f, errs))
	assert.False(t, errs.HasErrors(), "la plantilla generada debe ser válida: %v", errs.Items())
}

func TestValidateTemplate_EncabezadosSinDistinguirMayusculas(t *testing.T) {
	f, err := BuildTemplate()
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetCellValue(SheetPart, "A1", " partcategoryname "))

	errs := &ErrorCollector{}
	require.NoError(t, ValidateTemplate(f, errs))
	assert.False(t, errs.HasErrors())
}

func TestValidateTemplate_ColumnasInsuficientes(t *testing.T) {
	f, err := BuildTemplate()
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetCellValue(SheetPart, "C1", ""))

	errs := &ErrorCollector{}
	require.NoError(t, ValidateTemplate(f, errs))
	items := errs.Items()
	require.Len(t, items, 1)
	assert.Equal(t, CodeInsufficientColumns, items[0].Code)
	assert.Equal(t, SheetPart, items[0].Sheet)
}

func TestValidateTemplate_HojaFaltanteYEncabezadoInvalido(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	require.NoError(t, f.SetSheetName("Sheet1", SheetBranch))
	headers := []interface{}{"BranchName", "Phone"}
	require.NoError(t, f.SetSheetRow(SheetBranch, "A1", &headers))

	errs := &ErrorCollector{}
	require.NoError(t, ValidateTemplate(f, errs))
	items := errs.Items()

	require.Len(t, items, len(Templates), "una columna insuficiente + siete hojas faltantes")
	assert.Equal(t, CodeInsufficientColumns, items[0].Code)
	for _, e := range items[1:] {
		assert.Equal(t, CodeMissingSheet, e.Code)
		assert.Nil(t, e.Row)
	}
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(0))
	assert.Equal(t, "J", columnLetter(9))
	assert.Equal(t, "AA", columnLetter(26))
}

package masterdata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// importRun estado de una invocación, compartido por referencia entre las etapas.
type importRun struct {
	cache           *ImportContext
	errs            *ErrorCollector
	tx              *TransactionCoordinator
	geocoder        Geocoder
	identity        IdentityProvider
	defaultPassword string
	welcome         []WelcomeMessage
	roles           map[string]bool
	now             time.Time
	log             zerolog.Logger
}

// stage una hoja y su procesador. Solo devuelve error ante fallas de infraestructura;
// los problemas de datos se registran en el colector.
type stage struct {
	sheet string
	run   func(ctx context.Context, r *importRun, rows []sheetRow) error
}

// stages orden fijo de importación: cada etapa depende de las cachés que llenaron las anteriores.
var stages = []stage{
	{SheetBranch, importBranches},
	{SheetOperatingHour, importOperatingHours},
	{SheetStaff, importStaff},
	{SheetParentCategory, importParentCategories},
	{SheetServiceCategory, importServiceCategories},
	{SheetService, importServices},
	{SheetPartCategory, importPartCategories},
	{SheetPart, importParts},
}

func newID() string { return uuid.New().String() }

// requireFields registra un *_REQUIRED por cada campo vacío. Devuelve false si falta alguno.
func (r *importRun) requireFields(sheet string, row sheetRow, fields ...requiredField) bool {
	ok := true
	for _, f := range fields {
		if row.blank(f.col) {
			r.errs.AddAt(sheet, row.Number, f.col, f.code, fmt.Sprintf("%s es obligatorio", f.label))
			ok = false
		}
	}
	return ok
}

func (r *importRun) fieldError(sheet string, row sheetRow, col int, code string, err error) {
	r.errs.AddAt(sheet, row.Number, col, code, err.Error())
}

func (r *importRun) rowError(sheet string, row sheetRow, col int, code, format string, args ...interface{}) {
	r.errs.AddAt(sheet, row.Number, col, code, fmt.Sprintf(format, args...))
}

// roleExists consulta al proveedor de identidad una vez por rol.
func (r *importRun) roleExists(ctx context.Context, role string) (bool, error) {
	if ok, cached := r.roles[role]; cached {
		return ok, nil
	}
	ok, err := r.identity.RoleExists(ctx, role)
	if err != nil {
		return false, fmt.Errorf("consultar rol %s: %w", role, err)
	}
	r.roles[role] = ok
	return ok, nil
}

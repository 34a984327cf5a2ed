package masterdata

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

const (
	colHourBranch = iota
	colHourDay
	colHourIsOpen
	colHourOpen
	colHourClose
)

// weekOrder orden en que se informan los días faltantes.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// importOperatingHours procesa BranchOperatingHour y al final exige los siete días
// para cada sucursal que aparece en la hoja.
func importOperatingHours(ctx context.Context, r *importRun, rows []sheetRow) error {
	dups := duplicateKeys(rows, func(row sheetRow) string {
		if row.blank(colHourBranch) || row.blank(colHourDay) {
			return ""
		}
		return dupHourKey(row.cell(colHourBranch), row.cell(colHourDay))
	})

	covered := make(map[string]map[time.Weekday]bool)
	var seen []*entity.Branch

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetOperatingHour, row,
			requiredField{colHourBranch, CodeHourBranchRequired, "BranchName"},
			requiredField{colHourDay, CodeHourDayRequired, "DayOfWeek"},
			requiredField{colHourIsOpen, CodeHourIsOpenRequired, "IsOpen"},
		) {
			continue
		}

		day, dayErr := parseWeekday(row.cell(colHourDay))
		if dayErr != nil {
			r.fieldError(SheetOperatingHour, row, colHourDay, CodeHourInvalidDay, dayErr)
		}
		isOpen, err := parseBool(row.cell(colHourIsOpen))
		if err != nil {
			r.fieldError(SheetOperatingHour, row, colHourIsOpen, CodeHourInvalidIsOpen, err)
		}
		var openAt, closeAt *entity.TimeOfDay
		if err == nil && isOpen {
			openAt = r.parseHourCell(row, colHourOpen, CodeHourInvalidOpen)
			closeAt = r.parseHourCell(row, colHourClose, CodeHourInvalidClose)
			if openAt != nil && closeAt != nil && *closeAt <= *openAt {
				r.rowError(SheetOperatingHour, row, colHourClose, CodeHourInvalidRange,
					"la hora de cierre %s debe ser posterior a la de apertura %s", closeAt, openAt)
			}
		}

		branchName := row.cell(colHourBranch)
		branch := r.cache.branchByName(branchName)
		if branch == nil {
			r.rowError(SheetOperatingHour, row, colHourBranch, CodeHourBranchNotFound,
				"la sucursal %q no existe", branchName)
		} else if dayErr == nil {
			if covered[branch.ID] == nil {
				covered[branch.ID] = make(map[time.Weekday]bool, 7)
				seen = append(seen, branch)
			}
			covered[branch.ID][day] = true
		}

		if dups[dupHourKey(branchName, row.cell(colHourDay))] {
			r.rowError(SheetOperatingHour, row, colHourDay, CodeHourDuplicateDay,
				"el día %q de la sucursal %q aparece más de una vez", row.cell(colHourDay), branchName)
		}
		if r.errs.Len() > before {
			continue
		}

		key := hourKey(branch.ID, day)
		h := r.cache.operatingHours[key]
		if h == nil {
			h = &entity.OperatingHour{ID: newID(), BranchID: branch.ID, DayOfWeek: day, CreatedAt: r.now}
			r.cache.putOperatingHour(h)
			r.tx.insertOperatingHour(h)
		} else {
			r.tx.updateOperatingHour(h)
		}
		h.IsOpen = isOpen
		h.OpenTime, h.CloseTime = openAt, closeAt
		h.UpdatedAt = r.now
	}

	for _, b := range seen {
		var missing []string
		for _, d := range weekOrder {
			if !covered[b.ID][d] {
				missing = append(missing, d.String())
			}
		}
		if len(missing) > 0 {
			r.errs.Add(SheetOperatingHour, CodeHourMissingDays,
				fmt.Sprintf("la sucursal %q no tiene horario para: %s", b.Name, strings.Join(missing, ", ")))
		}
	}
	return nil
}

func dupHourKey(branch, day string) string {
	b := normalizeKey(branch)
	if d, err := parseWeekday(day); err == nil {
		return b + "|" + strconv.Itoa(int(d))
	}
	return b + "|" + normalizeKey(day)
}

// parseHourCell hora obligatoria para días abiertos.
func (r *importRun) parseHourCell(row sheetRow, col int, invalidCode string) *entity.TimeOfDay {
	if row.blank(col) {
		r.rowError(SheetOperatingHour, row, col, CodeHourTimeRequired, "la hora es obligatoria cuando IsOpen es verdadero")
		return nil
	}
	t, err := parseTimeOfDay(row.cell(col))
	if err != nil {
		r.fieldError(SheetOperatingHour, row, col, invalidCode, err)
		return nil
	}
	return &t
}

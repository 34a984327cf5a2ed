package masterdata

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

const (
	colPartCategoryName = iota
	colPartCategoryDescription
	colPartCategoryService
)

const (
	colPartCategory = iota
	colPartName
	colPartPrice
)

// importPartCategories procesa PartCategory. Un servicio no avanzado admite una sola
// PartCategory distinta: repetir el mismo vínculo no hace nada, uno diferente se rechaza.
// Nombres normalizados distintos son categorías distintas.
func importPartCategories(_ context.Context, r *importRun, rows []sheetRow) error {
	dups := duplicateKeys(rows, func(row sheetRow) string { return normalizeKey(row.cell(colPartCategoryName)) })

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetPartCategory, row,
			requiredField{colPartCategoryName, CodePartCategoryNameRequired, "PartCategoryName"},
			requiredField{colPartCategoryService, CodePartCategoryServiceRequired, "ServiceName"},
		) {
			continue
		}
		name, serviceName := row.cell(colPartCategoryName), row.cell(colPartCategoryService)
		service := r.cache.serviceByName(serviceName)
		if service == nil {
			r.rowError(SheetPartCategory, row, colPartCategoryService, CodePartCategoryServiceNotFound,
				"el servicio %q no existe", serviceName)
		}
		if dups[normalizeKey(name)] {
			r.rowError(SheetPartCategory, row, colPartCategoryName, CodePartCategoryDuplicateName,
				"la categoría de repuestos %q aparece más de una vez en la hoja", name)
		}
		if r.errs.Len() > before {
			continue
		}

		pc := r.cache.partCategoryByName(name)
		linked := r.cache.linkedPartCategories(service.ID)
		alreadyLinked := pc != nil && linked[pc.ID]
		if !service.IsAdvanced && !alreadyLinked && len(linked) > 0 {
			r.rowError(SheetPartCategory, row, colPartCategoryService, CodePartCategoryTooMany,
				"el servicio %q no es avanzado y ya tiene una categoría de repuestos vinculada", service.Name)
			continue
		}

		if pc == nil {
			pc = &entity.PartCategory{
				ID:          newID(),
				Name:        name,
				Description: row.cell(colPartCategoryDescription),
				CreatedAt:   r.now,
				UpdatedAt:   r.now,
			}
			r.cache.putPartCategory(pc)
			r.tx.insertPartCategory(pc)
		} else {
			if !row.blank(colPartCategoryDescription) {
				pc.Description = row.cell(colPartCategoryDescription)
			}
			pc.UpdatedAt = r.now
			r.tx.updatePartCategory(pc)
		}
		if !alreadyLinked {
			link := &entity.PartCategoryService{PartCategoryID: pc.ID, ServiceID: service.ID, CreatedAt: r.now}
			r.cache.putPartCategoryService(link)
			r.tx.linkPartCategoryService(link)
		}
	}
	return nil
}

// importParts procesa Part: resuelve la categoría de repuestos por nombre.
func importParts(_ context.Context, r *importRun, rows []sheetRow) error {
	dups := duplicateKeys(rows, func(row sheetRow) string { return normalizeKey(row.cell(colPartName)) })

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetPart, row,
			requiredField{colPartCategory, CodePartCategoryRequired, "PartCategoryName"},
			requiredField{colPartName, CodePartNameRequired, "PartName"},
			requiredField{colPartPrice, CodePartPriceRequired, "Price"},
		) {
			continue
		}
		name := row.cell(colPartName)
		price, err := parsePrice(row.cell(colPartPrice))
		if err == nil && price.IsNegative() {
			err = fmt.Errorf("el precio no puede ser negativo: %s", price)
		}
		if err != nil {
			r.fieldError(SheetPart, row, colPartPrice, CodePartInvalidPrice, err)
		}
		categoryName := row.cell(colPartCategory)
		pc := r.cache.partCategoryByName(categoryName)
		if pc == nil {
			r.rowError(SheetPart, row, colPartCategory, CodePartCategoryNotFound,
				"la categoría de repuestos %q no existe", categoryName)
		}
		if dups[normalizeKey(name)] {
			r.rowError(SheetPart, row, colPartName, CodePartDuplicateName,
				"el repuesto %q aparece más de una vez en la hoja", name)
		}
		if r.errs.Len() > before {
			continue
		}

		p := r.cache.parts[normalizeKey(name)]
		if p == nil {
			p = &entity.Part{ID: newID(), Name: name, CreatedAt: r.now}
			r.cache.putPart(p)
			r.tx.insertPart(p)
		} else {
			r.tx.updatePart(p)
		}
		p.PartCategoryID = pc.ID
		p.Price = price
		p.UpdatedAt = r.now
	}
	return nil
}

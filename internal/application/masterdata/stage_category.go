package masterdata

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

const (
	colParentName = iota
	colParentDescription
	colParentIsActive
)

const (
	colCategoryParent = iota
	colCategoryName
	colCategoryDescription
	colCategoryIsActive
)

// importParentCategories procesa ParentCategory: categorías raíz, llave nombre + "root".
func importParentCategories(_ context.Context, r *importRun, rows []sheetRow) error {
	dups := duplicateKeys(rows, func(row sheetRow) string { return normalizeKey(row.cell(colParentName)) })

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetParentCategory, row,
			requiredField{colParentName, CodeParentCategoryNameRequired, "ParentCategoryName"},
		) {
			continue
		}
		name := row.cell(colParentName)
		isActive, err := parseBoolDefault(row.cell(colParentIsActive), true)
		if err != nil {
			r.fieldError(SheetParentCategory, row, colParentIsActive, CodeParentCategoryInvalidIsActive, err)
		}
		if dups[normalizeKey(name)] {
			r.rowError(SheetParentCategory, row, colParentName, CodeParentCategoryDuplicateName,
				"la categoría padre %q aparece más de una vez en la hoja", name)
		}
		if r.errs.Len() > before {
			continue
		}
		r.upsertCategory(row, name, "", colParentDescription, colParentIsActive, isActive)
	}
	return nil
}

// importServiceCategories procesa ServiceCategory; el padre debe existir como categoría raíz.
func importServiceCategories(_ context.Context, r *importRun, rows []sheetRow) error {
	dups := duplicateKeys(rows, func(row sheetRow) string {
		if row.blank(colCategoryName) {
			return ""
		}
		return compositeKey(row.cell(colCategoryName), row.cell(colCategoryParent))
	})

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetServiceCategory, row,
			requiredField{colCategoryParent, CodeServiceCategoryParentRequired, "ParentCategoryName"},
			requiredField{colCategoryName, CodeServiceCategoryNameRequired, "CategoryName"},
		) {
			continue
		}
		name, parentName := row.cell(colCategoryName), row.cell(colCategoryParent)
		isActive, err := parseBoolDefault(row.cell(colCategoryIsActive), true)
		if err != nil {
			r.fieldError(SheetServiceCategory, row, colCategoryIsActive, CodeServiceCategoryInvalidIsActive, err)
		}
		parent := r.cache.rootCategoryByName(parentName)
		if parent == nil {
			r.rowError(SheetServiceCategory, row, colCategoryParent, CodeServiceCategoryParentNotFound,
				"la categoría padre %q no existe", parentName)
		}
		if dups[compositeKey(name, parentName)] {
			r.rowError(SheetServiceCategory, row, colCategoryName, CodeServiceCategoryDuplicateName,
				"la categoría %q aparece más de una vez bajo %q", name, parentName)
		}
		if r.errs.Len() > before {
			continue
		}
		r.upsertCategory(row, name, parent.ID, colCategoryDescription, colCategoryIsActive, isActive)
	}
	return nil
}

func (r *importRun) upsertCategory(row sheetRow, name, parentID string, colDescription, colIsActive int, isActive bool) {
	c := r.cache.categories[categoryKey(name, parentID)]
	if c == nil {
		c = &entity.ServiceCategory{
			ID:          newID(),
			ParentID:    parentID,
			Name:        name,
			Description: row.cell(colDescription),
			IsActive:    isActive,
			CreatedAt:   r.now,
			UpdatedAt:   r.now,
		}
		r.cache.putCategory(c)
		r.tx.insertCategory(c)
		return
	}
	if !row.blank(colDescription) {
		c.Description = row.cell(colDescription)
	}
	if !row.blank(colIsActive) {
		c.IsActive = isActive
	}
	c.UpdatedAt = r.now
	r.tx.updateCategory(c)
}

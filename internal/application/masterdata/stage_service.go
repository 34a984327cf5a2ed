package masterdata

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

const (
	colServiceCategory = iota
	colServiceName
	colServiceDescription
	colServicePrice
	colServiceDuration
	colServiceIsAdvanced
	colServiceBranch
)

// importServices procesa Service: resuelve la categoría por nombre y, si se indica sucursal,
// crea el vínculo sucursal-servicio cuando aún no existe.
func importServices(_ context.Context, r *importRun, rows []sheetRow) error {
	dups := duplicateKeys(rows, func(row sheetRow) string { return normalizeKey(row.cell(colServiceName)) })

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetService, row,
			requiredField{colServiceCategory, CodeServiceCategoryRequired, "CategoryName"},
			requiredField{colServiceName, CodeServiceNameRequired, "ServiceName"},
			requiredField{colServicePrice, CodeServicePriceRequired, "Price"},
			requiredField{colServiceDuration, CodeServiceDurationRequired, "EstimatedDuration"},
		) {
			continue
		}
		name := row.cell(colServiceName)
		price, err := parsePrice(row.cell(colServicePrice))
		if err == nil && price.IsNegative() {
			err = fmt.Errorf("el precio no puede ser negativo: %s", price)
		}
		if err != nil {
			r.fieldError(SheetService, row, colServicePrice, CodeServiceInvalidPrice, err)
		}
		duration, err := parseDuration(row.cell(colServiceDuration))
		if err == nil && !duration.IsPositive() {
			err = fmt.Errorf("la duración estimada debe ser mayor que cero: %s", duration)
		}
		if err != nil {
			r.fieldError(SheetService, row, colServiceDuration, CodeServiceInvalidDuration, err)
		}
		isAdvanced, err := parseBoolDefault(row.cell(colServiceIsAdvanced), false)
		if err != nil {
			r.fieldError(SheetService, row, colServiceIsAdvanced, CodeServiceInvalidIsAdvanced, err)
		}

		categoryName := row.cell(colServiceCategory)
		var category *entity.ServiceCategory
		switch candidates := r.cache.leafCategoriesByName(categoryName); len(candidates) {
		case 0:
			r.rowError(SheetService, row, colServiceCategory, CodeServiceCategoryNotFound,
				"la categoría %q no existe", categoryName)
		case 1:
			category = candidates[0]
		default:
			r.rowError(SheetService, row, colServiceCategory, CodeServiceCategoryAmbiguous,
				"el nombre de categoría %q corresponde a %d categorías", categoryName, len(candidates))
		}
		var branch *entity.Branch
		if !row.blank(colServiceBranch) {
			if branch = r.cache.branchByName(row.cell(colServiceBranch)); branch == nil {
				r.rowError(SheetService, row, colServiceBranch, CodeServiceBranchNotFound,
					"la sucursal %q no existe", row.cell(colServiceBranch))
			}
		}
		if dups[normalizeKey(name)] {
			r.rowError(SheetService, row, colServiceName, CodeServiceDuplicateName,
				"el servicio %q aparece más de una vez en la hoja", name)
		}
		if r.errs.Len() > before {
			continue
		}

		s := r.cache.serviceByName(name)
		if s == nil {
			s = &entity.Service{
				ID:          newID(),
				Name:        name,
				Description: row.cell(colServiceDescription),
				IsAdvanced:  isAdvanced,
				CreatedAt:   r.now,
			}
			r.cache.putService(s)
			r.tx.insertService(s)
		} else {
			if !row.blank(colServiceDescription) {
				s.Description = row.cell(colServiceDescription)
			}
			if !row.blank(colServiceIsAdvanced) {
				s.IsAdvanced = isAdvanced
			}
			r.tx.updateService(s)
		}
		s.CategoryID = category.ID
		s.Price = price
		s.EstimatedDuration = duration
		s.UpdatedAt = r.now

		if branch != nil {
			key := compositeKey(branch.ID, s.ID)
			if r.cache.branchServices[key] == nil {
				link := &entity.BranchService{BranchID: branch.ID, ServiceID: s.ID, CreatedAt: r.now}
				r.cache.branchServices[key] = link
				r.tx.linkBranchService(link)
			}
		}
	}
	return nil
}

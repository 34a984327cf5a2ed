package masterdata

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

const (
	colBranchName = iota
	colBranchPhone
	colBranchEmail
	colBranchStreet
	colBranchCommune
	colBranchProvince
	colBranchDescription
	colBranchIsActive
	colBranchArrival
	colBranchMaxBookings
)

const (
	defaultArrivalWindowMinutes = 30
	defaultMaxBookingsPerWindow = 1
)

// importBranches procesa la hoja Branch. La geocodificación es obligatoria: si falla, la fila no se persiste.
func importBranches(ctx context.Context, r *importRun, rows []sheetRow) error {
	dups := duplicateKeys(rows, func(row sheetRow) string { return normalizeKey(row.cell(colBranchName)) })

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetBranch, row,
			requiredField{colBranchName, CodeBranchNameRequired, "BranchName"},
			requiredField{colBranchPhone, CodeBranchPhoneRequired, "PhoneNumber"},
			requiredField{colBranchStreet, CodeBranchStreetRequired, "Street"},
			requiredField{colBranchCommune, CodeBranchCommuneRequired, "Commune"},
			requiredField{colBranchProvince, CodeBranchProvinceRequired, "Province"},
		) {
			continue
		}

		name := row.cell(colBranchName)
		phone, err := parsePhone(row.cell(colBranchPhone))
		if err != nil {
			r.fieldError(SheetBranch, row, colBranchPhone, CodeBranchInvalidPhone, err)
		}
		var email string
		if !row.blank(colBranchEmail) {
			if email, err = parseEmail(row.cell(colBranchEmail)); err != nil {
				r.fieldError(SheetBranch, row, colBranchEmail, CodeBranchInvalidEmail, err)
			}
		}
		isActive, err := parseBoolDefault(row.cell(colBranchIsActive), true)
		if err != nil {
			r.fieldError(SheetBranch, row, colBranchIsActive, CodeBranchInvalidIsActive, err)
		}
		arrival, err := parsePositiveIntDefault(row.cell(colBranchArrival), defaultArrivalWindowMinutes)
		if err != nil {
			r.fieldError(SheetBranch, row, colBranchArrival, CodeBranchInvalidArrival, err)
		}
		maxBookings, err := parsePositiveIntDefault(row.cell(colBranchMaxBookings), defaultMaxBookingsPerWindow)
		if err != nil {
			r.fieldError(SheetBranch, row, colBranchMaxBookings, CodeBranchInvalidMaxBookings, err)
		}

		if dups[normalizeKey(name)] {
			r.rowError(SheetBranch, row, colBranchName, CodeBranchDuplicateName,
				"la sucursal %q aparece más de una vez en la hoja", name)
		}
		if r.errs.Len() > before {
			continue
		}

		in := entity.Branch{
			Name:        name,
			PhoneNumber: phone,
			Street:      row.cell(colBranchStreet),
			Commune:     row.cell(colBranchCommune),
			Province:    row.cell(colBranchProvince),
		}
		geo, err := r.geocoder.Resolve(ctx, in.Address())
		if err != nil {
			r.log.Warn().Err(err).Str("branch", name).Int("row", row.Number).Msg("geocodificación fallida")
			r.rowError(SheetBranch, row, colBranchStreet, CodeBranchGeocodingFailed,
				"no se pudo geocodificar la dirección %q", in.Address())
			continue
		}

		b := r.cache.branchByName(name)
		if b == nil {
			b = &entity.Branch{
				ID:                   newID(),
				Name:                 name,
				Email:                email,
				Description:          row.cell(colBranchDescription),
				IsActive:             isActive,
				ArrivalWindowMinutes: arrival,
				MaxBookingsPerWindow: maxBookings,
				CreatedAt:            r.now,
			}
			r.cache.putBranch(b)
			r.tx.insertBranch(b)
		} else {
			if !row.blank(colBranchEmail) {
				b.Email = email
			}
			if !row.blank(colBranchDescription) {
				b.Description = row.cell(colBranchDescription)
			}
			if !row.blank(colBranchIsActive) {
				b.IsActive = isActive
			}
			if !row.blank(colBranchArrival) {
				b.ArrivalWindowMinutes = arrival
			}
			if !row.blank(colBranchMaxBookings) {
				b.MaxBookingsPerWindow = maxBookings
			}
			r.tx.updateBranch(b)
		}
		b.PhoneNumber = in.PhoneNumber
		b.Street = in.Street
		b.Commune = in.Commune
		b.Province = in.Province
		b.Latitude = geo.Latitude
		b.Longitude = geo.Longitude
		b.FormattedAddress = geo.FormattedAddress
		b.UpdatedAt = r.now
	}
	return nil
}

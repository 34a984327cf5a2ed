package masterdata

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	colStaffUserName = iota
	colStaffEmail
	colStaffPhone
	colStaffFullName
	colStaffRole
	colStaffBranch
	colStaffIsActive
)

// importStaff procesa la hoja Staff. Las cuentas nuevas reciben la contraseña por defecto,
// su rol y, si son técnicos, un registro de desempeño en cero. El correo de bienvenida queda en cola.
func importStaff(ctx context.Context, r *importRun, rows []sheetRow) error {
	dupNames := duplicateKeys(rows, func(row sheetRow) string { return normalizeKey(row.cell(colStaffUserName)) })
	dupEmails := duplicateKeys(rows, func(row sheetRow) string { return normalizeKey(row.cell(colStaffEmail)) })

	for _, row := range rows {
		before := r.errs.Len()
		if !r.requireFields(SheetStaff, row,
			requiredField{colStaffUserName, CodeStaffUserNameRequired, "UserName"},
			requiredField{colStaffEmail, CodeStaffEmailRequired, "Email"},
			requiredField{colStaffFullName, CodeStaffFullNameRequired, "FullName"},
			requiredField{colStaffRole, CodeStaffRoleRequired, "Role"},
			requiredField{colStaffBranch, CodeStaffBranchRequired, "BranchName"},
		) {
			continue
		}

		userName := row.cell(colStaffUserName)
		email, emailErr := parseEmail(row.cell(colStaffEmail))
		if emailErr != nil {
			r.fieldError(SheetStaff, row, colStaffEmail, CodeStaffInvalidEmail, emailErr)
		}
		var phone string
		if !row.blank(colStaffPhone) {
			var err error
			if phone, err = parsePhone(row.cell(colStaffPhone)); err != nil {
				r.fieldError(SheetStaff, row, colStaffPhone, CodeStaffInvalidPhone, err)
			}
		}
		role, roleErr := parseStaffRole(row.cell(colStaffRole))
		if roleErr != nil {
			r.fieldError(SheetStaff, row, colStaffRole, CodeStaffInvalidRole, roleErr)
		}
		isActive, err := parseBoolDefault(row.cell(colStaffIsActive), true)
		if err != nil {
			r.fieldError(SheetStaff, row, colStaffIsActive, CodeStaffInvalidIsActive, err)
		}

		if roleErr == nil {
			ok, err := r.roleExists(ctx, role)
			if err != nil {
				return err
			}
			if !ok {
				r.rowError(SheetStaff, row, colStaffRole, CodeStaffRoleNotConfigured,
					"el rol %q no está configurado en el proveedor de identidad", role)
			}
		}
		branchName := row.cell(colStaffBranch)
		branch := r.cache.branchByName(branchName)
		if branch == nil {
			r.rowError(SheetStaff, row, colStaffBranch, CodeStaffBranchNotFound, "la sucursal %q no existe", branchName)
		}
		if emailErr == nil {
			if owner := r.cache.usersByEmail[normalizeKey(email)]; owner != nil && normalizeKey(owner.UserName) != normalizeKey(userName) {
				r.rowError(SheetStaff, row, colStaffEmail, CodeStaffEmailExists,
					"el email %q ya pertenece al usuario %q", email, owner.UserName)
			}
		}

		if existing := r.cache.users[normalizeKey(userName)]; existing != nil {
			if current := r.cache.userRoles[existing.ID]; current != "" && !isStaffRole(current) {
				r.rowError(SheetStaff, row, colStaffUserName, CodeStaffUserNameReserved,
					"el usuario %q tiene rol %q y no se administra desde la hoja de personal", userName, current)
			}
		}
		if dupNames[normalizeKey(userName)] {
			r.rowError(SheetStaff, row, colStaffUserName, CodeStaffDuplicateName,
				"el usuario %q aparece más de una vez en la hoja", userName)
		}
		if dupEmails[normalizeKey(email)] {
			r.rowError(SheetStaff, row, colStaffEmail, CodeStaffDuplicateEmail,
				"el email %q aparece más de una vez en la hoja", email)
		}
		if r.errs.Len() > before {
			continue
		}

		u := r.cache.users[normalizeKey(userName)]
		if u == nil {
			u = &entity.User{
				ID:          newID(),
				UserName:    userName,
				Email:       email,
				PhoneNumber: phone,
				FullName:    row.cell(colStaffFullName),
				BranchID:    branch.ID,
				IsActive:    isActive,
				CreatedAt:   r.now,
				UpdatedAt:   r.now,
			}
			if err := r.identity.CreateAccount(ctx, u, r.defaultPassword); err != nil {
				return fmt.Errorf("crear cuenta %s: %w", userName, err)
			}
			r.cache.putUser(u)
			r.tx.insertUser(u)
			r.welcome = append(r.welcome, WelcomeMessage{
				UserName: u.UserName, FullName: u.FullName, Email: u.Email, Role: role, BranchName: branch.Name,
			})
		} else {
			oldEmail := u.Email
			u.Email = email
			if !row.blank(colStaffPhone) {
				u.PhoneNumber = phone
			}
			u.FullName = row.cell(colStaffFullName)
			u.BranchID = branch.ID
			if !row.blank(colStaffIsActive) {
				u.IsActive = isActive
			}
			u.UpdatedAt = r.now
			r.cache.reindexUserEmail(u, oldEmail)
			r.tx.updateUser(u)
		}

		if r.cache.userRoles[u.ID] != role {
			assignment, err := r.identity.AssignRole(ctx, u, role)
			if err != nil {
				return fmt.Errorf("asignar rol %s a %s: %w", role, userName, err)
			}
			r.cache.userRoles[u.ID] = role
			r.tx.assignRole(assignment)
		}
		if role == entity.RoleTechnician && r.cache.technicians[u.ID] == nil {
			tech := &entity.Technician{
				ID:         newID(),
				UserID:     u.ID,
				Quality:    decimal.Zero,
				Speed:      decimal.Zero,
				Efficiency: decimal.Zero,
				Score:      decimal.Zero,
				CreatedAt:  r.now,
				UpdatedAt:  r.now,
			}
			r.cache.technicians[u.ID] = tech
			r.tx.insertTechnician(tech)
		}
	}
	return nil
}

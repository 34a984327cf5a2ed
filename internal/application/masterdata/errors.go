package masterdata

import "github.com/jhoicas/Taller-api/internal/application/dto"

// Códigos de error de plantilla (validación estructural previa a la lectura de filas).
const (
	CodeMissingSheet        = "MissingSheet"
	CodeInsufficientColumns = "InsufficientColumns"
	CodeInvalidHeader       = "InvalidHeader"
)

// Códigos de error por hoja. Son estables: el cliente los usa para resaltar celdas.
const (
	CodeBranchNameRequired       = "BRANCH_NAME_REQUIRED"
	CodeBranchPhoneRequired      = "BRANCH_PHONE_REQUIRED"
	CodeBranchStreetRequired     = "BRANCH_STREET_REQUIRED"
	CodeBranchCommuneRequired    = "BRANCH_COMMUNE_REQUIRED"
	CodeBranchProvinceRequired   = "BRANCH_PROVINCE_REQUIRED"
	CodeBranchInvalidEmail       = "BRANCH_INVALID_EMAIL"
	CodeBranchInvalidPhone       = "BRANCH_INVALID_PHONE"
	CodeBranchInvalidIsActive    = "BRANCH_INVALID_IS_ACTIVE"
	CodeBranchInvalidArrival     = "BRANCH_INVALID_ARRIVAL_WINDOW"
	CodeBranchInvalidMaxBookings = "BRANCH_INVALID_MAX_BOOKINGS"
	CodeBranchDuplicateName      = "BRANCH_DUPLICATE_NAME"
	CodeBranchGeocodingFailed    = "BRANCH_GEOCODING_FAILED"

	CodeHourBranchRequired = "OPERATING_HOUR_BRANCH_REQUIRED"
	CodeHourDayRequired    = "OPERATING_HOUR_DAY_REQUIRED"
	CodeHourIsOpenRequired = "OPERATING_HOUR_IS_OPEN_REQUIRED"
	CodeHourInvalidDay     = "OPERATING_HOUR_INVALID_DAY"
	CodeHourInvalidIsOpen  = "OPERATING_HOUR_INVALID_IS_OPEN"
	CodeHourInvalidOpen    = "OPERATING_HOUR_INVALID_OPEN_TIME"
	CodeHourInvalidClose   = "OPERATING_HOUR_INVALID_CLOSE_TIME"
	CodeHourTimeRequired   = "OPERATING_HOUR_TIME_REQUIRED"
	CodeHourInvalidRange   = "OPERATING_HOUR_INVALID_RANGE"
	CodeHourBranchNotFound = "OPERATING_HOUR_BRANCH_NOT_FOUND"
	CodeHourDuplicateDay   = "OPERATING_HOUR_DUPLICATE_DAY"
	CodeHourMissingDays    = "OPERATING_HOUR_MISSING_DAYS"

	CodeStaffUserNameRequired  = "STAFF_USERNAME_REQUIRED"
	CodeStaffEmailRequired     = "STAFF_EMAIL_REQUIRED"
	CodeStaffFullNameRequired  = "STAFF_FULL_NAME_REQUIRED"
	CodeStaffRoleRequired      = "STAFF_ROLE_REQUIRED"
	CodeStaffBranchRequired    = "STAFF_BRANCH_REQUIRED"
	CodeStaffInvalidEmail      = "STAFF_INVALID_EMAIL"
	CodeStaffInvalidPhone      = "STAFF_INVALID_PHONE"
	CodeStaffInvalidRole       = "STAFF_INVALID_ROLE"
	CodeStaffInvalidIsActive   = "STAFF_INVALID_IS_ACTIVE"
	CodeStaffRoleNotConfigured = "STAFF_ROLE_NOT_CONFIGURED"
	CodeStaffBranchNotFound    = "STAFF_BRANCH_NOT_FOUND"
	CodeStaffEmailExists       = "STAFF_EMAIL_EXISTS"
	CodeStaffDuplicateName     = "STAFF_DUPLICATE_NAME"
	CodeStaffDuplicateEmail    = "STAFF_DUPLICATE_EMAIL"
	CodeStaffUserNameReserved  = "STAFF_USERNAME_RESERVED"

	CodeParentCategoryNameRequired    = "PARENT_CATEGORY_NAME_REQUIRED"
	CodeParentCategoryInvalidIsActive = "PARENT_CATEGORY_INVALID_IS_ACTIVE"
	CodeParentCategoryDuplicateName   = "PARENT_CATEGORY_DUPLICATE_NAME"

	CodeServiceCategoryParentRequired  = "SERVICE_CATEGORY_PARENT_REQUIRED"
	CodeServiceCategoryNameRequired    = "SERVICE_CATEGORY_NAME_REQUIRED"
	CodeServiceCategoryInvalidIsActive = "SERVICE_CATEGORY_INVALID_IS_ACTIVE"
	CodeServiceCategoryParentNotFound  = "SERVICE_CATEGORY_PARENT_NOT_FOUND"
	CodeServiceCategoryDuplicateName   = "SERVICE_CATEGORY_DUPLICATE_NAME"

	CodeServiceCategoryRequired  = "SERVICE_CATEGORY_REQUIRED"
	CodeServiceNameRequired      = "SERVICE_NAME_REQUIRED"
	CodeServicePriceRequired     = "SERVICE_PRICE_REQUIRED"
	CodeServiceDurationRequired  = "SERVICE_DURATION_REQUIRED"
	CodeServiceInvalidPrice      = "SERVICE_INVALID_PRICE"
	CodeServiceInvalidDuration   = "SERVICE_INVALID_DURATION"
	CodeServiceInvalidIsAdvanced = "SERVICE_INVALID_IS_ADVANCED"
	CodeServiceCategoryNotFound  = "SERVICE_CATEGORY_NOT_FOUND"
	CodeServiceCategoryAmbiguous = "SERVICE_CATEGORY_AMBIGUOUS"
	CodeServiceBranchNotFound    = "SERVICE_BRANCH_NOT_FOUND"
	CodeServiceDuplicateName     = "SERVICE_DUPLICATE_NAME"

	CodePartCategoryNameRequired    = "PART_CATEGORY_NAME_REQUIRED"
	CodePartCategoryServiceRequired = "PART_CATEGORY_SERVICE_REQUIRED"
	CodePartCategoryServiceNotFound = "PART_CATEGORY_SERVICE_NOT_FOUND"
	CodePartCategoryDuplicateName   = "PART_CATEGORY_DUPLICATE_NAME"
	CodePartCategoryTooMany         = "PART_CATEGORY_TOO_MANY_FOR_NON_ADVANCED_SERVICE"

	CodePartCategoryRequired = "PART_CATEGORY_REQUIRED"
	CodePartNameRequired     = "PART_NAME_REQUIRED"
	CodePartPriceRequired    = "PART_PRICE_REQUIRED"
	CodePartInvalidPrice     = "PART_INVALID_PRICE"
	CodePartCategoryNotFound = "PART_CATEGORY_NOT_FOUND"
	CodePartDuplicateName    = "PART_DUPLICATE_NAME"
)

// ErrorCollector acumula los problemas de toda la importación en orden de aparición.
// Add nunca falla; el colector se comparte por referencia entre etapas.
type ErrorCollector struct {
	items []dto.ImportErrorDetail
}

// Add agrega un error sin fila ni columna (nivel hoja).
func (c *ErrorCollector) Add(sheet, code, message string) {
	c.items = append(c.items, dto.ImportErrorDetail{Sheet: sheet, Code: code, Message: message})
}

// AddAt agrega un error ubicado en una celda. col < 0 omite la columna.
func (c *ErrorCollector) AddAt(sheet string, row, col int, code, message string) {
	d := dto.ImportErrorDetail{Sheet: sheet, Code: code, Message: message}
	if row > 0 {
		r := row
		d.Row = &r
	}
	if col >= 0 {
		letter := columnLetter(col)
		d.Column = &letter
	}
	c.items = append(c.items, d)
}

// HasErrors indica si se registró al menos un problema.
func (c *ErrorCollector) HasErrors() bool { return len(c.items) > 0 }

// Len cantidad de errores registrados.
func (c *ErrorCollector) Len() int { return len(c.items) }

// Items devuelve una copia de la lista acumulada.
func (c *ErrorCollector) Items() []dto.ImportErrorDetail {
	out := make([]dto.ImportErrorDetail, len(c.items))
	copy(out, c.items)
	return out
}

// countBySheet agrupa errores por hoja para métricas.
func (c *ErrorCollector) countBySheet() map[string]int {
	out := make(map[string]int)
	for _, e := range c.items {
		out[e.Sheet]++
	}
	return out
}

package masterdata

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Conversión explícita de texto de celda a valores tipados: cada parse devuelve el valor o un error
// descriptivo que la etapa registra como FieldValidationError.

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,19}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func parseEmail(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,email"); err != nil {
		return "", fmt.Errorf("email inválido %q", s)
	}
	return s, nil
}

func parsePhone(s string) (string, error) {
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required,phone"); err != nil {
		return "", fmt.Errorf("teléfono inválido %q", s)
	}
	return s, nil
}

func parseBool(s string) (bool, error) {
	switch normalizeKey(s) {
	case "true", "yes", "y", "1", "si", "sí", "verdadero", "x":
		return true, nil
	case "false", "no", "n", "0", "falso":
		return false, nil
	}
	return false, fmt.Errorf("valor booleano inválido %q", s)
}

// parseBoolDefault devuelve def cuando la celda está vacía.
func parseBoolDefault(s string, def bool) (bool, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return parseBool(s)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("$", "", " ", "").Replace(strings.TrimSpace(s))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("número inválido %q", s)
	}
	return d, nil
}

// Límites de las columnas INT y NUMERIC(p, 2) donde terminan los valores numéricos.
var (
	minInt32    = decimal.NewFromInt(math.MinInt32)
	maxInt32    = decimal.NewFromInt(math.MaxInt32)
	maxPrice    = decimal.New(1, 12) // NUMERIC(14, 2)
	maxDuration = decimal.New(1, 6)  // NUMERIC(8, 2)
)

// parseInt acepta enteros escritos como decimal sin parte fraccionaria ("30" o "30.0")
// dentro del rango de una columna INT.
func parseInt(s string) (int, error) {
	d, err := parseDecimal(s)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("entero inválido %q", s)
	}
	if d.LessThan(minInt32) || d.GreaterThan(maxInt32) {
		return 0, fmt.Errorf("entero fuera de rango %q", s)
	}
	return int(d.IntPart()), nil
}

// parseAmount decimal con a lo sumo dos decimales y valor absoluto menor que limit.
func parseAmount(s string, limit decimal.Decimal) (decimal.Decimal, error) {
	d, err := parseDecimal(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.Equal(d.Truncate(2)) {
		return decimal.Zero, fmt.Errorf("admite a lo sumo dos decimales: %q", s)
	}
	if d.Abs().GreaterThanOrEqual(limit) {
		return decimal.Zero, fmt.Errorf("debe ser menor que %s: %q", limit, s)
	}
	return d, nil
}

// parsePrice monto de precio (servicios y repuestos).
func parsePrice(s string) (decimal.Decimal, error) { return parseAmount(s, maxPrice) }

// parseDuration duración estimada en horas.
func parseDuration(s string) (decimal.Decimal, error) { return parseAmount(s, maxDuration) }

// parsePositiveIntDefault entero > 0; celda vacía devuelve def.
func parsePositiveIntDefault(s string, def int) (int, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	n, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("debe ser mayor que cero: %q", s)
	}
	return n, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday, "domingo": time.Sunday,
	"monday": time.Monday, "mon": time.Monday, "lunes": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "martes": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "miércoles": time.Wednesday, "miercoles": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "jueves": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "viernes": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sábado": time.Saturday, "sabado": time.Saturday,
}

// parseWeekday acepta nombre en inglés o español, abreviatura de tres letras o número 0-6 (0 = domingo).
func parseWeekday(s string) (time.Weekday, error) {
	key := normalizeKey(s)
	if d, ok := weekdayNames[key]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n <= 6 {
		return time.Weekday(n), nil
	}
	return 0, fmt.Errorf("día de la semana inválido %q", s)
}

var timeLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3:04:05 PM"}

// parseTimeOfDay acepta HH:mm, HH:mm:ss, h:mm AM/PM o la fracción de día que Excel usa para horas.
func parseTimeOfDay(s string) (entity.TimeOfDay, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return entity.NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
		}
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f < 1 {
		secs := int(math.Round(f * 86400))
		return entity.TimeOfDay(secs), nil
	}
	return 0, fmt.Errorf("hora inválida %q", s)
}

var staffRoles = map[string]string{
	"technician": entity.RoleTechnician,
	"manager":    entity.RoleManager,
}

func isStaffRole(role string) bool {
	for _, r := range staffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// parseStaffRole restringe el rol al vocabulario admitido en la planilla de personal.
func parseStaffRole(s string) (string, error) {
	if role, ok := staffRoles[normalizeKey(s)]; ok {
		return role, nil
	}
	return "", fmt.Errorf("rol %q no permitido (Technician o Manager)", strings.TrimSpace(s))
}

package masterdata

import (
	"strings"

	"golang.org/x/text/cases"
)

const rootKey = "root"

// normalizeKey recorta espacios y aplica case folding Unicode ("Frenos" == "FRENOS" == " frenos ").
func normalizeKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// compositeKey concatena componentes normalizados con "|".
func compositeKey(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = normalizeKey(p)
	}
	return strings.Join(norm, "|")
}

// categoryKey llave natural de una categoría: nombre + id del padre ("root" para categorías padre).
func categoryKey(name, parentID string) string {
	if parentID == "" {
		parentID = rootKey
	}
	return compositeKey(name, parentID)
}

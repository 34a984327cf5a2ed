package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidWorkbook    = errors.New("el archivo no es un libro XLSX legible")
	ErrImportInProgress   = errors.New("ya hay una importación en curso")
	ErrGeocodingFailed    = errors.New("no se pudo geocodificar la dirección")
)

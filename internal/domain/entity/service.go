package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service servicio ofrecido por el taller.
// Un servicio no avanzado admite como máximo una PartCategory vinculada.
type Service struct {
	ID                string
	CategoryID        string
	Name              string
	Description       string
	Price             decimal.Decimal
	EstimatedDuration decimal.Decimal // horas
	IsAdvanced        bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BranchService asociación sucursal-servicio (llave compuesta BranchID + ServiceID).
type BranchService struct {
	BranchID  string
	ServiceID string
	CreatedAt time.Time
}
